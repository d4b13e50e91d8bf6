package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	"freiplatz/internal/models/request_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

func searchFixture() (*fakeSearchRepo, *fakeFacilityRepo, *fakeCategoryRepo) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	near := &db_models.Facility{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Haus am See", City: "Berlin", Latitude: fp(52.53), Longitude: fp(13.40), IsActive: true}
	far := &db_models.Facility{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Waldhaus", City: "Potsdam", Latitude: fp(52.39), Longitude: fp(13.06), IsActive: true}

	search := &fakeSearchRepo{candidates: []repositories.SearchCandidate{
		{FacilityID: far.ID, Latitude: far.Latitude, Longitude: far.Longitude, AvailablePlaces: 4, LastUpdated: now},
		{FacilityID: near.ID, Latitude: near.Latitude, Longitude: near.Longitude, AvailablePlaces: 1, LastUpdated: now.Add(-time.Hour)},
	}}
	return search, newFakeFacilityRepo(near, far), newFakeCategoryRepo()
}

func TestSearchSortsByDistanceAndPaginates(t *testing.T) {
	searchRepo, facilities, categories := searchFixture()
	audit := &recordingAudit{}
	svc := NewSearchService(searchRepo, facilities, categories, audit)

	page, err := svc.Search(context.Background(), principal(db_models.RoleManager), request_models.SearchRequest{
		Latitude:  fp(52.52),
		Longitude: fp(13.405),
		SortBy:    request_models.SortByDistance,
		SortOrder: request_models.SortAsc,
		Limit:     1,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Meta.Total != 2 || page.Meta.TotalPages != 2 || page.Meta.Page != 1 {
		t.Fatalf("meta = %+v", page.Meta)
	}
	if len(page.Data) != 1 || page.Data[0].Name != "Haus am See" {
		t.Fatalf("first result = %+v", page.Data)
	}
	if page.Data[0].Distance == nil || *page.Data[0].Distance > 2 {
		t.Fatalf("distance = %v", page.Data[0].Distance)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != ActionSearch {
		t.Fatalf("audit entries = %+v", audit.entries)
	}
}

func TestSearchDefaults(t *testing.T) {
	searchRepo, facilities, categories := searchFixture()
	svc := NewSearchService(searchRepo, facilities, categories, &recordingAudit{})

	page, err := svc.Search(context.Background(), principal(db_models.RoleLeadership), request_models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	filters, ok := page.Meta.Filters.(request_models.SearchRequest)
	if !ok || page.Meta.Limit != request_models.DefaultSearchLimit || filters.SortBy != request_models.SortByLastUpdated {
		t.Fatalf("defaults not applied: %+v", page.Meta)
	}
	// lastUpdated desc: Waldhaus is the most recent.
	if page.Data[0].Name != "Waldhaus" || page.Data[0].Distance != nil {
		t.Fatalf("first result = %+v", page.Data[0])
	}
}

func TestSearchValidation(t *testing.T) {
	searchRepo, facilities, categories := searchFixture()
	svc := NewSearchService(searchRepo, facilities, categories, &recordingAudit{})
	manager := principal(db_models.RoleManager)

	tests := []struct {
		name string
		req  request_models.SearchRequest
	}{
		{"distance without origin", request_models.SearchRequest{SortBy: request_models.SortByDistance}},
		{"radius without origin", request_models.SearchRequest{Radius: fp(10)}},
		{"latitude only", request_models.SearchRequest{Latitude: fp(52.5)}},
		{"inverted ages", request_models.SearchRequest{MinAge: intPtr(16), MaxAge: intPtr(12)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), manager, tt.req)
			if !errors.Is(err, utils.ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestSearchForbiddenForCarrier(t *testing.T) {
	searchRepo, facilities, categories := searchFixture()
	svc := NewSearchService(searchRepo, facilities, categories, &recordingAudit{})

	_, err := svc.Search(context.Background(), principal(db_models.RoleCarrier), request_models.SearchRequest{})
	if !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestSearchSurvivesAuditFailure(t *testing.T) {
	searchRepo, facilities, categories := searchFixture()
	auditRepo := &failingAuditRepo{}
	svc := NewSearchService(searchRepo, facilities, categories, NewAuditService(auditRepo))

	page, err := svc.Search(context.Background(), principal(db_models.RoleManager), request_models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search should not fail when audit fails: %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("results = %d", len(page.Data))
	}
	if auditRepo.calls != 1 {
		t.Fatalf("audit insert attempts = %d", auditRepo.calls)
	}
}

func TestSearchByCategory(t *testing.T) {
	searchRepo, facilities, _ := searchFixture()
	cat := &db_models.Category{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Inobhutnahme", IsActive: true}
	svc := NewSearchService(searchRepo, facilities, newFakeCategoryRepo(cat), &recordingAudit{})
	manager := principal(db_models.RoleManager)

	if _, err := svc.SearchByCategory(context.Background(), manager, cat.ID, request_models.SearchRequest{CategoryIDs: []uuid.UUID{uuid.New()}}); err != nil {
		t.Fatalf("SearchByCategory: %v", err)
	}
	if len(searchRepo.criteria.CategoryIDs) != 1 || searchRepo.criteria.CategoryIDs[0] != cat.ID {
		t.Fatalf("criteria categories = %v", searchRepo.criteria.CategoryIDs)
	}

	_, err := svc.SearchByCategory(context.Background(), manager, uuid.New(), request_models.SearchRequest{})
	if !errors.Is(err, utils.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want category not found", err)
	}
}

func intPtr(v int) *int { return &v }

func TestSearchDistanceNullForUnlocatedFacility(t *testing.T) {
	unlocated := &db_models.Facility{BaseModel: db_models.BaseModel{ID: uuid.New()}, Name: "Ohne Adresse", City: "Berlin", IsActive: true}
	searchRepo := &fakeSearchRepo{candidates: []repositories.SearchCandidate{
		{FacilityID: unlocated.ID, AvailablePlaces: 1, LastUpdated: time.Now()},
	}}
	svc := NewSearchService(searchRepo, newFakeFacilityRepo(unlocated), newFakeCategoryRepo(), &recordingAudit{})
	manager := principal(db_models.RoleManager)

	withOrigin, err := svc.Search(context.Background(), manager, request_models.SearchRequest{Latitude: fp(52.52), Longitude: fp(13.405)})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	raw, err := json.Marshal(withOrigin.Data[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"distance":null`) {
		t.Fatalf("expected distance null, got %s", raw)
	}

	withoutOrigin, err := svc.Search(context.Background(), manager, request_models.SearchRequest{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	raw, err = json.Marshal(withoutOrigin.Data[0])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), `"distance"`) {
		t.Fatalf("distance must be omitted without an origin, got %s", raw)
	}
	if !strings.Contains(string(raw), `"name":"Ohne Adresse"`) || !strings.Contains(string(raw), `"availablePlaces":1`) {
		t.Fatalf("facility fields missing: %s", raw)
	}
}

func TestSearchDistanceWrittenForLocatedFacility(t *testing.T) {
	searchRepo, facilities, categories := searchFixture()
	svc := NewSearchService(searchRepo, facilities, categories, &recordingAudit{})

	page, err := svc.Search(context.Background(), principal(db_models.RoleManager), request_models.SearchRequest{
		Latitude: fp(52.52), Longitude: fp(13.405), SortBy: request_models.SortByDistance, SortOrder: request_models.SortAsc,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	raw, err := json.Marshal(page)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(raw), `"distance":`) != 2 || strings.Contains(string(raw), `"distance":null`) {
		t.Fatalf("expected two numeric distances, got %s", raw)
	}
}
