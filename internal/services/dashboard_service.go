package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"freiplatz/internal/access"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type DashboardServiceInterface interface {
	Report(ctx context.Context, p *access.Principal) (*response_models.DashboardReport, error)
}

type DashboardService struct {
	repo      repositories.DashboardRepository
	auditRepo repositories.AuditRepository
	now       func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository, auditRepo repositories.AuditRepository) DashboardServiceInterface {
	return &DashboardService{repo: repo, auditRepo: auditRepo, now: time.Now}
}

// Report aggregates system-wide counts. The account count is only filled
// for admins.
func (s *DashboardService) Report(ctx context.Context, p *access.Principal) (*response_models.DashboardReport, error) {
	if err := p.Require(access.ResDashboard, access.ActRead); err != nil {
		return nil, err
	}

	var (
		report     response_models.DashboardReport
		places     repositories.PlaceTotalsRow
		hours      repositories.HourTotalsRow
		categories []repositories.CategoryAvailabilityRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { report.Carriers, err = s.repo.CountCarriers(gctx, false); return })
	g.Go(func() (err error) { report.ActiveCarriers, err = s.repo.CountCarriers(gctx, true); return })
	g.Go(func() (err error) { report.Facilities, err = s.repo.CountFacilities(gctx, false); return })
	g.Go(func() (err error) { report.ActiveFacilities, err = s.repo.CountFacilities(gctx, true); return })
	g.Go(func() (err error) { places, err = s.repo.PlaceTotals(gctx); return })
	g.Go(func() (err error) { hours, err = s.repo.HourTotals(gctx); return })
	g.Go(func() (err error) { categories, err = s.repo.CategoryAvailability(gctx); return })
	g.Go(func() (err error) {
		report.SearchesLast7d, err = s.auditRepo.CountByActionSince(gctx, ActionSearch, s.now().Add(-7*24*time.Hour))
		return
	})
	if p.IsAdmin() {
		g.Go(func() (err error) { report.Accounts, err = s.repo.CountAccounts(gctx); return })
	}
	if err := g.Wait(); err != nil {
		return nil, dbError(err)
	}

	report.TotalPlaces = places.Total
	report.OccupiedPlaces = places.Occupied
	report.OccupancyRate = utils.Percent(places.Occupied, places.Total)
	report.TotalHours = hours.Total
	report.AvailableHours = hours.Available
	report.UtilizationRate = utils.Percent(hours.Total-hours.Available, hours.Total)

	report.Categories = make([]response_models.CategoryAvailability, 0, len(categories))
	for _, c := range categories {
		report.Categories = append(report.Categories, response_models.CategoryAvailability{
			CategoryID:      c.CategoryID.String(),
			CategoryName:    c.CategoryName,
			UnitType:        c.UnitType,
			Facilities:      c.Facilities,
			AvailablePlaces: c.AvailablePlaces,
			TotalPlaces:     c.TotalPlaces,
		})
	}
	return &report, nil
}
