package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freiplatz/internal/access"
	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/response_models"
	"freiplatz/internal/repositories"
)

func mustEnforcer() *access.Enforcer {
	e, err := access.NewEnforcer()
	if err != nil {
		panic(err)
	}
	return e
}

var testEnforcer = mustEnforcer()

func principal(role db_models.Role, carriers ...uuid.UUID) *access.Principal {
	return access.NewPrincipal(uuid.New(), role, carriers, testEnforcer)
}

type fakeFacilityRepo struct {
	repositories.FacilityRepository
	byID map[uuid.UUID]*db_models.Facility
}

func newFakeFacilityRepo(fs ...*db_models.Facility) *fakeFacilityRepo {
	r := &fakeFacilityRepo{byID: map[uuid.UUID]*db_models.Facility{}}
	for _, f := range fs {
		r.byID[f.ID] = f
	}
	return r
}

func (r *fakeFacilityRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Facility, error) {
	f, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFacilityRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]db_models.Facility, error) {
	out := make([]db_models.Facility, 0, len(ids))
	for _, id := range ids {
		if f, ok := r.byID[id]; ok {
			out = append(out, *f)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	repositories.CategoryRepository
	byID map[uuid.UUID]*db_models.Category
}

func newFakeCategoryRepo(cs ...*db_models.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byID: map[uuid.UUID]*db_models.Category{}}
	for _, c := range cs {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// fakePlaceRepo mimics the locked allocation with a mutex.
type fakePlaceRepo struct {
	repositories.PlaceRepository
	mu         sync.Mutex
	facilities *fakeFacilityRepo
	places     []db_models.Place
}

func (r *fakePlaceRepo) CreateWithinCapacity(_ context.Context, facilityID uuid.UUID, defaultCapacity int, plan repositories.AllocationPlan) (*repositories.AllocationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.facilities.byID[facilityID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	res := &repositories.AllocationResult{MaxCapacity: f.MaxCapacity}
	if f.MaxCapacity <= 0 {
		f.MaxCapacity = defaultCapacity
		res.MaxCapacity = defaultCapacity
		res.DefaultApplied = true
	}
	for _, p := range r.places {
		if p.FacilityID == facilityID {
			res.CurrentCount++
		}
	}
	places, err := plan(res.MaxCapacity, res.CurrentCount)
	if err != nil {
		return nil, err
	}
	for i := range places {
		places[i].ID = uuid.New()
	}
	r.places = append(r.places, places...)
	res.Places = places
	return res, nil
}

type fakeSearchRepo struct {
	candidates []repositories.SearchCandidate
	criteria   repositories.SearchCriteria
}

func (r *fakeSearchRepo) FindCandidates(_ context.Context, c repositories.SearchCriteria) ([]repositories.SearchCandidate, error) {
	r.criteria = c
	return r.candidates, nil
}

type fakeHourRepo struct {
	repositories.HourRepository
	byID map[uuid.UUID]*db_models.Hour
	// totalAfterRead simulates a concurrent shrink of total_hours between
	// the service's read and its conditional write.
	totalAfterRead *int
}

func (r *fakeHourRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Hour, error) {
	h, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *fakeHourRepo) Create(_ context.Context, h *db_models.Hour) error {
	h.ID = uuid.New()
	cp := *h
	r.byID[h.ID] = &cp
	return nil
}

func (r *fakeHourRepo) UpdateAvailableHours(_ context.Context, id uuid.UUID, available int) (bool, error) {
	h, ok := r.byID[id]
	if !ok {
		return false, nil
	}
	if r.totalAfterRead != nil {
		h.TotalHours = *r.totalAfterRead
	}
	if available > h.TotalHours {
		return false, nil
	}
	h.AvailableHours = available
	return true, nil
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (a *recordingAudit) Record(_ context.Context, e AuditEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *recordingAudit) List(context.Context, repositories.AuditFilter, int, int) (*response_models.Paged[response_models.AuditLogResponse], error) {
	return nil, nil
}

type failingAuditRepo struct {
	repositories.AuditRepository
	calls int
}

func (r *failingAuditRepo) Insert(context.Context, *db_models.AuditLog) error {
	r.calls++
	return errors.New("audit table unavailable")
}
