package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/models/db_models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *db_models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*db_models.Category, error)
	List(ctx context.Context, activeOnly bool) ([]db_models.Category, error)
	Update(ctx context.Context, category *db_models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	IsInUse(ctx context.Context, id uuid.UUID) (bool, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *db_models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*db_models.Category, error) {
	var category db_models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, activeOnly bool) ([]db_models.Category, error) {
	var categories []db_models.Category
	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *db_models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&db_models.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsInUse reports whether any child category, availability, place or hour
// references the category.
func (r *categoryRepository) IsInUse(ctx context.Context, id uuid.UUID) (bool, error) {
	checks := []struct {
		model  interface{}
		column string
	}{
		{&db_models.Category{}, "parent_id"},
		{&db_models.Availability{}, "category_id"},
		{&db_models.Place{}, "category_id"},
		{&db_models.Hour{}, "category_id"},
	}
	for _, c := range checks {
		var n int64
		if err := r.db.WithContext(ctx).Model(c.model).Where(c.column+" = ?", id).Count(&n).Error; err != nil {
			return false, err
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}
