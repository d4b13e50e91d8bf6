package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type fakeDashboardRepo struct {
	err error
}

func (r fakeDashboardRepo) CountCarriers(_ context.Context, activeOnly bool) (int64, error) {
	if activeOnly {
		return 3, r.err
	}
	return 4, r.err
}

func (r fakeDashboardRepo) CountFacilities(_ context.Context, activeOnly bool) (int64, error) {
	if activeOnly {
		return 9, nil
	}
	return 10, nil
}

func (fakeDashboardRepo) CountAccounts(context.Context) (int64, error) { return 17, nil }

func (fakeDashboardRepo) PlaceTotals(context.Context) (repositories.PlaceTotalsRow, error) {
	return repositories.PlaceTotalsRow{Total: 40, Occupied: 30}, nil
}

func (fakeDashboardRepo) HourTotals(context.Context) (repositories.HourTotalsRow, error) {
	return repositories.HourTotalsRow{Total: 200, Available: 50}, nil
}

func (fakeDashboardRepo) CategoryAvailability(context.Context) ([]repositories.CategoryAvailabilityRow, error) {
	return []repositories.CategoryAvailabilityRow{{CategoryID: uuid.New(), CategoryName: "Wohngruppe", Facilities: 2, AvailablePlaces: 5, TotalPlaces: 12}}, nil
}

type fakeAuditCounter struct {
	repositories.AuditRepository
	since time.Time
}

func (r *fakeAuditCounter) CountByActionSince(_ context.Context, action string, since time.Time) (int64, error) {
	r.since = since
	if action != ActionSearch {
		return 0, nil
	}
	return 42, nil
}

func TestDashboardReport(t *testing.T) {
	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	audit := &fakeAuditCounter{}
	svc := &DashboardService{repo: fakeDashboardRepo{}, auditRepo: audit, now: func() time.Time { return now }}

	report, err := svc.Report(context.Background(), principal(db_models.RoleLeadership))
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Carriers != 4 || report.ActiveCarriers != 3 || report.Facilities != 10 || report.ActiveFacilities != 9 {
		t.Fatalf("counts = %+v", report)
	}
	if report.OccupancyRate != 75 || report.UtilizationRate != 75 {
		t.Fatalf("rates = %d/%d", report.OccupancyRate, report.UtilizationRate)
	}
	if report.Accounts != 0 {
		t.Fatal("account count is admin only")
	}
	if report.SearchesLast7d != 42 || !audit.since.Equal(now.Add(-7*24*time.Hour)) {
		t.Fatalf("searches = %d since %s", report.SearchesLast7d, audit.since)
	}
	if len(report.Categories) != 1 || report.Categories[0].AvailablePlaces != 5 {
		t.Fatalf("categories = %+v", report.Categories)
	}

	adminReport, err := svc.Report(context.Background(), principal(db_models.RoleAdmin))
	if err != nil {
		t.Fatalf("Report(admin): %v", err)
	}
	if adminReport.Accounts != 17 {
		t.Fatalf("accounts = %d", adminReport.Accounts)
	}
}

func TestDashboardReportErrors(t *testing.T) {
	svc := &DashboardService{repo: fakeDashboardRepo{err: errors.New("connection reset")}, auditRepo: &fakeAuditCounter{}, now: time.Now}

	if _, err := svc.Report(context.Background(), principal(db_models.RoleLeadership)); !errors.Is(err, utils.ErrDatabaseError) {
		t.Fatalf("err = %v, want database error", err)
	}
	if _, err := svc.Report(context.Background(), principal(db_models.RoleManager)); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}
