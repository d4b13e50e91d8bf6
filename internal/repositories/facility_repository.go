package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/infra"
	"freiplatz/internal/models/db_models"
)

type FacilityFilter struct {
	// CarrierIDs restricts the listing; nil means every carrier.
	CarrierIDs []uuid.UUID
	CarrierID  *uuid.UUID
	City       string
	ActiveOnly bool
}

type FacilityRepository interface {
	Create(ctx context.Context, facility *db_models.Facility) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Facility, error)
	FindWithAvailabilities(ctx context.Context, id uuid.UUID) (*db_models.Facility, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Facility, error)
	List(ctx context.Context, filter FacilityFilter, page, pageSize int) ([]db_models.Facility, int64, error)
	Update(ctx context.Context, facility *db_models.Facility) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type facilityRepository struct {
	db *gorm.DB
}

func NewFacilityRepository(db *gorm.DB) FacilityRepository {
	return &facilityRepository{db: db}
}

func (r *facilityRepository) Create(ctx context.Context, facility *db_models.Facility) error {
	return r.db.WithContext(ctx).Create(facility).Error
}

func (r *facilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Facility, error) {
	var facility db_models.Facility
	err := r.db.WithContext(ctx).
		Preload("Carrier").
		First(&facility, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &facility, nil
}

func (r *facilityRepository) FindWithAvailabilities(ctx context.Context, id uuid.UUID) (*db_models.Facility, error) {
	var facility db_models.Facility
	err := r.db.WithContext(ctx).
		Preload("Carrier").
		Preload("Availabilities", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_updated DESC")
		}).
		Preload("Availabilities.Category").
		First(&facility, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &facility, nil
}

// FindByIDs loads facilities with their open availabilities. Order of the
// result is unspecified.
func (r *facilityRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]db_models.Facility, error) {
	if len(ids) == 0 {
		return []db_models.Facility{}, nil
	}
	var facilities []db_models.Facility
	err := r.db.WithContext(ctx).
		Preload("Carrier").
		Preload("Availabilities", "available_places > 0").
		Preload("Availabilities.Category").
		Where("id IN ?", ids).
		Find(&facilities).Error
	if err != nil {
		return nil, err
	}
	return facilities, nil
}

func (r *facilityRepository) List(ctx context.Context, filter FacilityFilter, page, pageSize int) ([]db_models.Facility, int64, error) {
	var (
		facilities []db_models.Facility
		total      int64
	)

	q := r.db.WithContext(ctx).Model(&db_models.Facility{})
	if filter.CarrierIDs != nil {
		if len(filter.CarrierIDs) == 0 {
			return []db_models.Facility{}, 0, nil
		}
		q = q.Where("carrier_id IN ?", filter.CarrierIDs)
	}
	if filter.CarrierID != nil {
		q = q.Where("carrier_id = ?", *filter.CarrierID)
	}
	if filter.City != "" {
		q = q.Where("city ILIKE ?", "%"+EscapeLike(filter.City)+"%")
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Carrier").
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&facilities).Error
	if err != nil {
		return nil, 0, err
	}
	return facilities, total, nil
}

func (r *facilityRepository) Update(ctx context.Context, facility *db_models.Facility) error {
	return r.db.WithContext(ctx).Omit("Carrier", "Availabilities").Save(facility).Error
}

// DeleteCascade removes places, hours and availabilities of the facility and
// then the facility itself, all in one transaction.
func (r *facilityRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (err error) {
	tx, err := infra.StartTransaction(r.db.WithContext(ctx))
	if err != nil {
		return err
	}
	defer func() {
		err = infra.ReleaseTransaction(tx, err)
	}()

	if err = tx.Where("facility_id = ?", id).Delete(&db_models.Place{}).Error; err != nil {
		return err
	}
	if err = tx.Where("facility_id = ?", id).Delete(&db_models.Hour{}).Error; err != nil {
		return err
	}
	if err = tx.Unscoped().Where("facility_id = ?", id).Delete(&db_models.Availability{}).Error; err != nil {
		return err
	}

	res := tx.Delete(&db_models.Facility{}, "id = ?", id)
	if res.Error != nil {
		err = res.Error
		return err
	}
	if res.RowsAffected == 0 {
		err = gorm.ErrRecordNotFound
		return err
	}
	return nil
}
