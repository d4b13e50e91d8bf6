package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchCriteria holds the SQL-side filters of an availability search.
// Distance, ordering and paging are applied by the caller.
type SearchCriteria struct {
	CategoryIDs       []uuid.UUID
	GenderSuitability string
	MinAge            *int
	MaxAge            *int
	City              string
	PostalCode        string
}

// SearchCandidate is one facility with at least one matching availability.
// AvailablePlaces and LastUpdated are the maximum over its matching rows.
type SearchCandidate struct {
	FacilityID      uuid.UUID `gorm:"column:facility_id"`
	Latitude        *float64  `gorm:"column:latitude"`
	Longitude       *float64  `gorm:"column:longitude"`
	AvailablePlaces int       `gorm:"column:available_places"`
	LastUpdated     time.Time `gorm:"column:last_updated"`
}

type SearchRepository interface {
	FindCandidates(ctx context.Context, criteria SearchCriteria) ([]SearchCandidate, error)
}

type searchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) FindCandidates(ctx context.Context, criteria SearchCriteria) ([]SearchCandidate, error) {
	q := r.db.WithContext(ctx).
		Table("facilities f").
		Select(`f.id AS facility_id,
			f.latitude AS latitude,
			f.longitude AS longitude,
			MAX(a.available_places) AS available_places,
			MAX(a.last_updated) AS last_updated`).
		Joins("JOIN carriers cr ON cr.id = f.carrier_id AND cr.is_active AND cr.deleted_at IS NULL").
		Joins("JOIN availabilities a ON a.facility_id = f.id AND a.deleted_at IS NULL").
		Joins("JOIN categories c ON c.id = a.category_id AND c.is_active AND c.deleted_at IS NULL").
		Where("f.deleted_at IS NULL AND f.is_active").
		Where("a.available_places > 0")

	if len(criteria.CategoryIDs) > 0 {
		q = q.Where("a.category_id IN ?", criteria.CategoryIDs)
	}
	if criteria.GenderSuitability != "" {
		q = q.Where("a.gender_suitability IN ?", []string{criteria.GenderSuitability, "all"})
	}
	if criteria.MinAge != nil {
		q = q.Where("a.max_age >= ?", *criteria.MinAge)
	}
	if criteria.MaxAge != nil {
		q = q.Where("a.min_age <= ?", *criteria.MaxAge)
	}
	if criteria.City != "" {
		q = q.Where("f.city ILIKE ?", "%"+EscapeLike(criteria.City)+"%")
	}
	if criteria.PostalCode != "" {
		q = q.Where("f.postal_code ILIKE ?", "%"+EscapeLike(criteria.PostalCode)+"%")
	}

	var rows []SearchCandidate
	err := q.Group("f.id, f.latitude, f.longitude").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
