package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freiplatz/internal/models/db_models"
)

// AllocationPlan builds the places to insert given the locked facility's
// capacity and its current place count.
type AllocationPlan func(maxCapacity, currentCount int) ([]db_models.Place, error)

type AllocationResult struct {
	Places         []db_models.Place
	MaxCapacity    int
	CurrentCount   int
	DefaultApplied bool
}

type PlaceStatRow struct {
	CategoryID        uuid.UUID
	CategoryName      string
	GenderSuitability db_models.GenderSuitability
	Total             int64
	Occupied          int64
}

type PlaceRepository interface {
	Create(ctx context.Context, place *db_models.Place) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Place, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]db_models.Place, error)
	Update(ctx context.Context, place *db_models.Place) error
	SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByFacility(ctx context.Context, facilityID uuid.UUID) (int64, error)

	// CreateWithinCapacity locks the facility row, applies defaultCapacity
	// when none is configured, counts existing places and inserts what plan
	// returns, all in one transaction.
	CreateWithinCapacity(ctx context.Context, facilityID uuid.UUID, defaultCapacity int, plan AllocationPlan) (*AllocationResult, error)

	StatisticsRows(ctx context.Context, facilityID uuid.UUID) ([]PlaceStatRow, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(ctx context.Context, place *db_models.Place) error {
	return r.db.WithContext(ctx).Omit("Category").Create(place).Error
}

func (r *placeRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Place, error) {
	var place db_models.Place
	err := r.db.WithContext(ctx).Preload("Category").First(&place, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]db_models.Place, error) {
	var places []db_models.Place
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("facility_id = ?", facilityID).
		Order("created_at ASC, name ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}
	return places, nil
}

func (r *placeRepository) Update(ctx context.Context, place *db_models.Place) error {
	return r.db.WithContext(ctx).Omit("Category").Save(place).Error
}

func (r *placeRepository) SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) error {
	res := r.db.WithContext(ctx).Model(&db_models.Place{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_occupied":  occupied,
			"last_updated": gorm.Expr("now()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *placeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&db_models.Place{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *placeRepository) CountByFacility(ctx context.Context, facilityID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db_models.Place{}).
		Where("facility_id = ?", facilityID).
		Count(&count).Error
	return count, err
}

func (r *placeRepository) CreateWithinCapacity(ctx context.Context, facilityID uuid.UUID, defaultCapacity int, plan AllocationPlan) (*AllocationResult, error) {
	result := &AllocationResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var facility db_models.Facility
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&facility, "id = ?", facilityID).Error
		if err != nil {
			return err
		}

		if facility.MaxCapacity <= 0 {
			err := tx.Model(&db_models.Facility{}).
				Where("id = ?", facilityID).
				Update("max_capacity", defaultCapacity).Error
			if err != nil {
				return err
			}
			facility.MaxCapacity = defaultCapacity
			result.DefaultApplied = true
		}

		var count int64
		if err := tx.Model(&db_models.Place{}).Where("facility_id = ?", facilityID).Count(&count).Error; err != nil {
			return err
		}
		result.MaxCapacity = facility.MaxCapacity
		result.CurrentCount = int(count)

		places, err := plan(facility.MaxCapacity, int(count))
		if err != nil {
			return err
		}
		if len(places) == 0 {
			return nil
		}
		if err := tx.Omit("Category").Create(&places).Error; err != nil {
			return err
		}
		result.Places = places
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *placeRepository) StatisticsRows(ctx context.Context, facilityID uuid.UUID) ([]PlaceStatRow, error) {
	var rows []PlaceStatRow
	err := r.db.WithContext(ctx).
		Table("places p").
		Select(`p.category_id AS category_id,
			c.name AS category_name,
			p.gender_suitability AS gender_suitability,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE p.is_occupied) AS occupied`).
		Joins("JOIN categories c ON c.id = p.category_id").
		Where("p.facility_id = ? AND p.deleted_at IS NULL", facilityID).
		Group("p.category_id, c.name, p.gender_suitability").
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
