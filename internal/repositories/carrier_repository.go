package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/models/db_models"
)

type CarrierRepository interface {
	Create(ctx context.Context, carrier *db_models.Carrier) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Carrier, error)
	List(ctx context.Context, page, pageSize int) ([]db_models.Carrier, int64, error)
	Update(ctx context.Context, carrier *db_models.Carrier) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountFacilities(ctx context.Context, id uuid.UUID) (int64, error)
}

type carrierRepository struct {
	db *gorm.DB
}

func NewCarrierRepository(db *gorm.DB) CarrierRepository {
	return &carrierRepository{db: db}
}

func (r *carrierRepository) Create(ctx context.Context, carrier *db_models.Carrier) error {
	return r.db.WithContext(ctx).Create(carrier).Error
}

func (r *carrierRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Carrier, error) {
	var carrier db_models.Carrier
	err := r.db.WithContext(ctx).First(&carrier, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &carrier, nil
}

func (r *carrierRepository) List(ctx context.Context, page, pageSize int) ([]db_models.Carrier, int64, error) {
	var (
		carriers []db_models.Carrier
		total    int64
	)
	q := r.db.WithContext(ctx).Model(&db_models.Carrier{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&carriers).Error
	return carriers, total, err
}

func (r *carrierRepository) Update(ctx context.Context, carrier *db_models.Carrier) error {
	return r.db.WithContext(ctx).Save(carrier).Error
}

func (r *carrierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("carrier_id = ?", id).Delete(&db_models.CarrierAccount{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&db_models.Carrier{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *carrierRepository) CountFacilities(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&db_models.Facility{}).Where("carrier_id = ?", id).Count(&n).Error
	return n, err
}
