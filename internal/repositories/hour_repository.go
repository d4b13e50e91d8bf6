package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/models/db_models"
)

type HourStatRow struct {
	CategoryID        uuid.UUID
	CategoryName      string
	GenderSuitability db_models.GenderSuitability
	TotalHours        int64
	AvailableHours    int64
}

type HourRepository interface {
	Create(ctx context.Context, hour *db_models.Hour) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Hour, error)
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]db_models.Hour, error)
	Update(ctx context.Context, hour *db_models.Hour) error
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateAvailableHours writes the value only while it does not exceed
	// total_hours and reports whether a row changed.
	UpdateAvailableHours(ctx context.Context, id uuid.UUID, available int) (bool, error)

	StatisticsRows(ctx context.Context, facilityID uuid.UUID) ([]HourStatRow, error)
}

type hourRepository struct {
	db *gorm.DB
}

func NewHourRepository(db *gorm.DB) HourRepository {
	return &hourRepository{db: db}
}

func (r *hourRepository) Create(ctx context.Context, hour *db_models.Hour) error {
	return r.db.WithContext(ctx).Omit("Category").Create(hour).Error
}

func (r *hourRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Hour, error) {
	var hour db_models.Hour
	err := r.db.WithContext(ctx).Preload("Category").First(&hour, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hour, nil
}

func (r *hourRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]db_models.Hour, error) {
	var hours []db_models.Hour
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("facility_id = ?", facilityID).
		Order("name ASC").
		Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}

func (r *hourRepository) Update(ctx context.Context, hour *db_models.Hour) error {
	return r.db.WithContext(ctx).Omit("Category").Save(hour).Error
}

func (r *hourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&db_models.Hour{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *hourRepository) UpdateAvailableHours(ctx context.Context, id uuid.UUID, available int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&db_models.Hour{}).
		Where("id = ? AND total_hours >= ?", id, available).
		Updates(map[string]interface{}{
			"available_hours": available,
			"last_updated":    gorm.Expr("now()"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *hourRepository) StatisticsRows(ctx context.Context, facilityID uuid.UUID) ([]HourStatRow, error) {
	var rows []HourStatRow
	err := r.db.WithContext(ctx).
		Table("hours h").
		Select(`h.category_id AS category_id,
			c.name AS category_name,
			h.gender_suitability AS gender_suitability,
			COALESCE(SUM(h.total_hours), 0) AS total_hours,
			COALESCE(SUM(h.available_hours), 0) AS available_hours`).
		Joins("JOIN categories c ON c.id = h.category_id").
		Where("h.facility_id = ? AND h.deleted_at IS NULL", facilityID).
		Group("h.category_id, c.name, h.gender_suitability").
		Order("c.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
