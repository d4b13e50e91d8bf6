package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "freiplatz/internal/models/db_models"
)

type DashboardRepository interface {
	CountCarriers(ctx context.Context, activeOnly bool) (int64, error)
	CountFacilities(ctx context.Context, activeOnly bool) (int64, error)
	CountAccounts(ctx context.Context) (int64, error)
	PlaceTotals(ctx context.Context) (PlaceTotalsRow, error)
	HourTotals(ctx context.Context) (HourTotalsRow, error)
	CategoryAvailability(ctx context.Context) ([]CategoryAvailabilityRow, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type PlaceTotalsRow struct {
	Total    int64 `gorm:"column:total"`
	Occupied int64 `gorm:"column:occupied"`
}

type HourTotalsRow struct {
	Total     int64 `gorm:"column:total"`
	Available int64 `gorm:"column:available"`
}

type CategoryAvailabilityRow struct {
	CategoryID      uuid.UUID `gorm:"column:category_id"`
	CategoryName    string    `gorm:"column:category_name"`
	UnitType        string    `gorm:"column:unit_type"`
	Facilities      int64     `gorm:"column:facilities"`
	AvailablePlaces int64     `gorm:"column:available_places"`
	TotalPlaces     int64     `gorm:"column:total_places"`
}

// ---------- Counts ----------
func (r *dashboardRepository) CountCarriers(ctx context.Context, activeOnly bool) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&dbm.Carrier{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountFacilities(ctx context.Context, activeOnly bool) (int64, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&dbm.Facility{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.Account{}).Count(&n).Error
	return n, err
}

// ---------- Totals ----------
func (r *dashboardRepository) PlaceTotals(ctx context.Context) (PlaceTotalsRow, error) {
	var row PlaceTotalsRow
	err := r.db.WithContext(ctx).
		Table("places").
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE is_occupied) AS occupied").
		Where("deleted_at IS NULL").
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) HourTotals(ctx context.Context) (HourTotalsRow, error) {
	var row HourTotalsRow
	err := r.db.WithContext(ctx).
		Table("hours").
		Select("COALESCE(SUM(total_hours), 0) AS total, COALESCE(SUM(available_hours), 0) AS available").
		Where("deleted_at IS NULL").
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) CategoryAvailability(ctx context.Context) ([]CategoryAvailabilityRow, error) {
	var rows []CategoryAvailabilityRow
	err := r.db.WithContext(ctx).
		Table("categories c").
		Select(`c.id AS category_id,
			c.name AS category_name,
			c.unit_type AS unit_type,
			COUNT(DISTINCT a.facility_id) AS facilities,
			COALESCE(SUM(a.available_places), 0) AS available_places,
			COALESCE(SUM(a.total_places), 0) AS total_places`).
		Joins("LEFT JOIN availabilities a ON a.category_id = c.id AND a.deleted_at IS NULL").
		Where("c.deleted_at IS NULL AND c.is_active").
		Group("c.id, c.name, c.unit_type").
		Order("c.name ASC").
		Scan(&rows).Error
	return rows, err
}
