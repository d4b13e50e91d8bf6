package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"freiplatz/internal/access"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type HourServiceInterface interface {
	ListByFacility(ctx context.Context, p *access.Principal, facilityID uuid.UUID) ([]response_models.HourResponse, error)
	Create(ctx context.Context, p *access.Principal, req request_models.CreateHourRequest) (*response_models.HourResponse, error)
	Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateHourRequest) (*response_models.HourResponse, error)
	UpdateAvailableHours(ctx context.Context, p *access.Principal, id uuid.UUID, available int) (*response_models.HourResponse, error)
	Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error
	Statistics(ctx context.Context, p *access.Principal, facilityID uuid.UUID) (*response_models.HourStatistics, error)
}

type HourService struct {
	hourRepo     repositories.HourRepository
	facilityRepo repositories.FacilityRepository
	categoryRepo repositories.CategoryRepository
	audit        AuditServiceInterface
}

func NewHourService(
	hourRepo repositories.HourRepository,
	facilityRepo repositories.FacilityRepository,
	categoryRepo repositories.CategoryRepository,
	audit AuditServiceInterface,
) HourServiceInterface {
	return &HourService{
		hourRepo:     hourRepo,
		facilityRepo: facilityRepo,
		categoryRepo: categoryRepo,
		audit:        audit,
	}
}

func exceedsTotal(total int) error {
	return utils.NewFieldError("availableHours", fmt.Sprintf("available hours must not exceed total hours (%d)", total))
}

func (s *HourService) ListByFacility(ctx context.Context, p *access.Principal, facilityID uuid.UUID) ([]response_models.HourResponse, error) {
	if err := p.Require(access.ResHour, access.ActRead); err != nil {
		return nil, err
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, facilityID); err != nil {
		return nil, err
	}

	hours, err := s.hourRepo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, dbError(err)
	}
	out := make([]response_models.HourResponse, 0, len(hours))
	for i := range hours {
		out = append(out, toHourResponse(&hours[i]))
	}
	return out, nil
}

func (s *HourService) Create(ctx context.Context, p *access.Principal, req request_models.CreateHourRequest) (*response_models.HourResponse, error) {
	if err := p.Require(access.ResHour, access.ActWrite); err != nil {
		return nil, err
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, req.FacilityID); err != nil {
		return nil, err
	}
	category, err := categoryOfUnit(ctx, s.categoryRepo, req.CategoryID, db_models.UnitHours)
	if err != nil {
		return nil, err
	}
	gs, err := genderOrDefault(req.GenderSuitability, db_models.GenderAll)
	if err != nil {
		return nil, err
	}
	lo, hi, err := ageRange(req.MinAge, req.MaxAge, 0, db_models.MaxMaxAge)
	if err != nil {
		return nil, err
	}

	available := req.TotalHours
	if req.AvailableHours != nil {
		available = *req.AvailableHours
	}
	if req.TotalHours < 0 {
		return nil, utils.NewFieldError("totalHours", "totalHours must not be negative")
	}
	if available < 0 {
		return nil, utils.NewFieldError("availableHours", "availableHours must not be negative")
	}
	if available > req.TotalHours {
		return nil, exceedsTotal(req.TotalHours)
	}

	hour := &db_models.Hour{
		FacilityID:        req.FacilityID,
		CategoryID:        category.ID,
		Name:              strings.TrimSpace(req.Name),
		TotalHours:        req.TotalHours,
		AvailableHours:    available,
		GenderSuitability: gs,
		MinAge:            lo,
		MaxAge:            hi,
	}
	if err := s.hourRepo.Create(ctx, hour); err != nil {
		return nil, dbError(err)
	}
	hour.Category = *category

	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionCreate, Entity: EntityHour, EntityID: &hour.ID, Details: req})
	resp := toHourResponse(hour)
	return &resp, nil
}

func (s *HourService) loadInScope(ctx context.Context, p *access.Principal, id uuid.UUID) (*db_models.Hour, error) {
	hour, err := s.hourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if hour == nil {
		return nil, utils.ErrHourNotFound
	}
	if _, err := facilityInScope(ctx, s.facilityRepo, p, hour.FacilityID); err != nil {
		return nil, err
	}
	return hour, nil
}

func (s *HourService) Update(ctx context.Context, p *access.Principal, id uuid.UUID, req request_models.UpdateHourRequest) (*response_models.HourResponse, error) {
	if err := p.Require(access.ResHour, access.ActWrite); err != nil {
		return nil, err
	}
	hour, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil && *req.CategoryID != hour.CategoryID {
		category, err := categoryOfUnit(ctx, s.categoryRepo, *req.CategoryID, db_models.UnitHours)
		if err != nil {
			return nil, err
		}
		hour.CategoryID = category.ID
		hour.Category = *category
	}
	if req.Name != nil {
		hour.Name = strings.TrimSpace(*req.Name)
	}
	if req.TotalHours != nil {
		hour.TotalHours = *req.TotalHours
	}
	if req.AvailableHours != nil {
		hour.AvailableHours = *req.AvailableHours
	}
	if hour.AvailableHours > hour.TotalHours {
		return nil, exceedsTotal(hour.TotalHours)
	}
	if req.GenderSuitability != nil {
		gs, err := genderOrDefault(*req.GenderSuitability, hour.GenderSuitability)
		if err != nil {
			return nil, err
		}
		hour.GenderSuitability = gs
	}
	lo, hi, err := ageRange(req.MinAge, req.MaxAge, hour.MinAge, hour.MaxAge)
	if err != nil {
		return nil, err
	}
	hour.MinAge, hour.MaxAge = lo, hi

	if err := s.hourRepo.Update(ctx, hour); err != nil {
		return nil, dbError(err)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionUpdate, Entity: EntityHour, EntityID: &hour.ID, Details: req})

	resp := toHourResponse(hour)
	return &resp, nil
}

// UpdateAvailableHours sets only the available hours. The write is
// conditional on total_hours so a concurrent total change cannot leave
// available above total.
func (s *HourService) UpdateAvailableHours(ctx context.Context, p *access.Principal, id uuid.UUID, available int) (*response_models.HourResponse, error) {
	if err := p.Require(access.ResHour, access.ActWrite); err != nil {
		return nil, err
	}
	if available < 0 {
		return nil, utils.NewFieldError("availableHours", "availableHours must not be negative")
	}
	hour, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if available > hour.TotalHours {
		return nil, exceedsTotal(hour.TotalHours)
	}

	ok, err := s.hourRepo.UpdateAvailableHours(ctx, id, available)
	if err != nil {
		return nil, dbError(err)
	}

	current, err := s.hourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(err)
	}
	if current == nil {
		return nil, utils.ErrHourNotFound
	}
	if !ok {
		return nil, exceedsTotal(current.TotalHours)
	}

	s.audit.Record(ctx, AuditEntry{
		UserID:   p.UserRef(),
		Action:   ActionUpdate,
		Entity:   EntityHour,
		EntityID: &current.ID,
		Details:  map[string]int{"availableHours": available, "previous": hour.AvailableHours},
	})
	resp := toHourResponse(current)
	return &resp, nil
}

func (s *HourService) Delete(ctx context.Context, p *access.Principal, id uuid.UUID) error {
	if err := p.Require(access.ResHour, access.ActWrite); err != nil {
		return err
	}
	hour, err := s.loadInScope(ctx, p, id)
	if err != nil {
		return err
	}
	if err := s.hourRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, utils.ErrHourNotFound)
	}
	s.audit.Record(ctx, AuditEntry{UserID: p.UserRef(), Action: ActionDelete, Entity: EntityHour, EntityID: &hour.ID})
	return nil
}

func (s *HourService) Statistics(ctx context.Context, p *access.Principal, facilityID uuid.UUID) (*response_models.HourStatistics, error) {
	if err := p.Require(access.ResStatistics, access.ActRead); err != nil {
		return nil, err
	}
	if err := statisticsScope(ctx, s.facilityRepo, p, facilityID); err != nil {
		return nil, err
	}

	rows, err := s.hourRepo.StatisticsRows(ctx, facilityID)
	if err != nil {
		return nil, dbError(err)
	}
	stats := aggregateHourStatistics(rows)
	return &stats, nil
}
