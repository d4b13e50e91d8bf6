//go:build integration

package repositories

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"freiplatz/internal/config"
	"freiplatz/internal/infra"
	"freiplatz/internal/models/db_models"
)

func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("Skipping test: Docker not available")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "freiplatz",
				"POSTGRES_PASSWORD": "freiplatz",
				"POSTGRES_DB":       "freiplatz",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal(err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatal(err)
	}

	db, err := infra.InitPostgresql(config.DatabaseConfig{
		URL:             fmt.Sprintf("postgres://freiplatz:freiplatz@%s:%s/freiplatz?sslmode=disable", host, port.Port()),
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Minute,
		AutoMigrate:     true,
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { infra.ClosePostgresql(db) })
	return db
}

type seed struct {
	carrier  db_models.Carrier
	category db_models.Category
	facility db_models.Facility
}

func seedFacility(t *testing.T, db *gorm.DB, maxCapacity int, lat, lon *float64) seed {
	t.Helper()
	s := seed{
		carrier:  db_models.Carrier{Name: "Jugendhilfe Nord", IsActive: true},
		category: db_models.Category{Name: "Wohngruppe " + uuid.NewString()[:8], UnitType: db_models.UnitPlaces, IsActive: true},
	}
	if err := db.Create(&s.carrier).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&s.category).Error; err != nil {
		t.Fatal(err)
	}
	s.facility = db_models.Facility{CarrierID: s.carrier.ID, Name: "Haus Linde", City: "Hamburg", PostalCode: "20095", Latitude: lat, Longitude: lon, MaxCapacity: maxCapacity, IsActive: true}
	if err := db.Create(&s.facility).Error; err != nil {
		t.Fatal(err)
	}
	return s
}

func TestCreateWithinCapacityConcurrent(t *testing.T) {
	db := startPostgres(t)
	s := seedFacility(t, db, 10, nil, nil)
	repo := NewPlaceRepository(db)

	plan := func(maxCapacity, current int) ([]db_models.Place, error) {
		remaining := maxCapacity - current
		if remaining <= 0 {
			return nil, fmt.Errorf("full")
		}
		n := min(3, remaining)
		places := make([]db_models.Place, 0, n)
		for i := 1; i <= n; i++ {
			places = append(places, db_models.Place{
				FacilityID:        s.facility.ID,
				CategoryID:        s.category.ID,
				Name:              fmt.Sprintf("Platz %d", current+i),
				GenderSuitability: db_models.GenderAll,
				MaxAge:            db_models.MaxMaxAge,
			})
		}
		return places, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.CreateWithinCapacity(context.Background(), s.facility.ID, 20, plan)
		}()
	}
	wg.Wait()

	count, err := repo.CountByFacility(context.Background(), s.facility.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 10 {
		t.Fatalf("facility holds %d places, want 10", count)
	}

	var names []string
	if err := db.Model(&db_models.Place{}).Where("facility_id = ?", s.facility.ID).Distinct().Pluck("name", &names).Error; err != nil {
		t.Fatal(err)
	}
	if len(names) != 10 {
		t.Fatalf("distinct names = %d, want 10", len(names))
	}
}

func TestCreateWithinCapacityPersistsDefault(t *testing.T) {
	db := startPostgres(t)
	s := seedFacility(t, db, 0, nil, nil)
	repo := NewPlaceRepository(db)

	res, err := repo.CreateWithinCapacity(context.Background(), s.facility.ID, 20, func(maxCapacity, current int) ([]db_models.Place, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.DefaultApplied || res.MaxCapacity != 20 {
		t.Fatalf("result = %+v", res)
	}

	var f db_models.Facility
	if err := db.First(&f, "id = ?", s.facility.ID).Error; err != nil {
		t.Fatal(err)
	}
	if f.MaxCapacity != 20 {
		t.Fatalf("stored max capacity = %d", f.MaxCapacity)
	}
}

func TestSyncAndSearch(t *testing.T) {
	db := startPostgres(t)
	lat, lon := 53.55, 9.99
	s := seedFacility(t, db, 10, &lat, &lon)
	places := NewPlaceRepository(db)

	for i, occupied := range []bool{true, false, false} {
		p := &db_models.Place{FacilityID: s.facility.ID, CategoryID: s.category.ID, Name: fmt.Sprintf("Platz %d", i+1), IsOccupied: occupied, GenderSuitability: db_models.GenderAll, MaxAge: 27}
		if err := places.Create(context.Background(), p); err != nil {
			t.Fatal(err)
		}
	}

	n, err := NewAvailabilityRepository(db).SyncFromPlaces(context.Background())
	if err != nil {
		t.Fatalf("SyncFromPlaces: %v", err)
	}
	if n != 1 {
		t.Fatalf("synced rows = %d, want 1", n)
	}

	// A second run with unchanged places writes nothing.
	if n, err := NewAvailabilityRepository(db).SyncFromPlaces(context.Background()); err != nil || n != 0 {
		t.Fatalf("second sync = %d, %v", n, err)
	}

	search := NewSearchRepository(db)
	cands, err := search.FindCandidates(context.Background(), SearchCriteria{City: "hamb", CategoryIDs: []uuid.UUID{s.category.ID}})
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(cands) != 1 || cands[0].AvailablePlaces != 2 || cands[0].Latitude == nil {
		t.Fatalf("candidates = %+v", cands)
	}

	none, err := search.FindCandidates(context.Background(), SearchCriteria{City: "%"})
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("wildcard city must be matched literally, got %d", len(none))
	}

	stats, err := places.StatisticsRows(context.Background(), s.facility.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 || stats[0].Total != 3 || stats[0].Occupied != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	// Removing every place of the pair must zero its availability.
	remaining, err := places.ListByFacility(context.Background(), s.facility.ID)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range remaining {
		if err := places.Delete(context.Background(), p.ID); err != nil {
			t.Fatal(err)
		}
	}
	if n, err := NewAvailabilityRepository(db).SyncFromPlaces(context.Background()); err != nil || n != 1 {
		t.Fatalf("sync after delete = %d, %v", n, err)
	}

	var a db_models.Availability
	if err := db.First(&a, "facility_id = ? AND category_id = ?", s.facility.ID, s.category.ID).Error; err != nil {
		t.Fatal(err)
	}
	if a.AvailablePlaces != 0 || a.TotalPlaces != 0 {
		t.Fatalf("availability after delete = %d/%d, want 0/0", a.AvailablePlaces, a.TotalPlaces)
	}

	gone, err := search.FindCandidates(context.Background(), SearchCriteria{CategoryIDs: []uuid.UUID{s.category.ID}})
	if err != nil {
		t.Fatal(err)
	}
	if len(gone) != 0 {
		t.Fatalf("facility without places still found: %+v", gone)
	}

	if n, err := NewAvailabilityRepository(db).SyncFromPlaces(context.Background()); err != nil || n != 0 {
		t.Fatalf("idle sync = %d, %v", n, err)
	}
}

func addAvailability(t *testing.T, db *gorm.DB, s seed, gender db_models.GenderSuitability, minAge, maxAge int) {
	t.Helper()
	a := &db_models.Availability{
		FacilityID:        s.facility.ID,
		CategoryID:        s.category.ID,
		AvailablePlaces:   2,
		TotalPlaces:       4,
		GenderSuitability: gender,
		MinAge:            minAge,
		MaxAge:            maxAge,
	}
	if err := NewAvailabilityRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("create availability: %v", err)
	}
}

func facilityIDs(cands []SearchCandidate) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(cands))
	for _, c := range cands {
		out[c.FacilityID] = true
	}
	return out
}

func TestFindCandidatesGenderAndAge(t *testing.T) {
	db := startPostgres(t)
	male := seedFacility(t, db, 10, nil, nil)
	female := seedFacility(t, db, 10, nil, nil)
	mixed := seedFacility(t, db, 10, nil, nil)
	addAvailability(t, db, male, db_models.GenderMale, 0, 12)
	addAvailability(t, db, female, db_models.GenderFemale, 14, 18)
	addAvailability(t, db, mixed, db_models.GenderAll, 16, 27)

	search := NewSearchRepository(db)
	age := func(v int) *int { return &v }

	tests := []struct {
		name     string
		criteria SearchCriteria
		include  []seed
		exclude  []seed
	}{
		{name: "male matches male and all", criteria: SearchCriteria{GenderSuitability: "male"}, include: []seed{male, mixed}, exclude: []seed{female}},
		{name: "female matches female and all", criteria: SearchCriteria{GenderSuitability: "female"}, include: []seed{female, mixed}, exclude: []seed{male}},
		{name: "all matches only all", criteria: SearchCriteria{GenderSuitability: "all"}, include: []seed{mixed}, exclude: []seed{male, female}},
		{name: "age overlap", criteria: SearchCriteria{MinAge: age(10), MaxAge: age(15)}, include: []seed{male, female}, exclude: []seed{mixed}},
		{name: "touching bounds overlap", criteria: SearchCriteria{MinAge: age(12), MaxAge: age(14)}, include: []seed{male, female}, exclude: []seed{mixed}},
		{name: "min age only", criteria: SearchCriteria{MinAge: age(19)}, include: []seed{mixed}, exclude: []seed{male, female}},
		{name: "max age only", criteria: SearchCriteria{MaxAge: age(13)}, include: []seed{male}, exclude: []seed{female, mixed}},
		{name: "gender and age combined", criteria: SearchCriteria{GenderSuitability: "male", MinAge: age(17)}, include: []seed{mixed}, exclude: []seed{male, female}},
		{name: "category filter", criteria: SearchCriteria{CategoryIDs: []uuid.UUID{female.category.ID}}, include: []seed{female}, exclude: []seed{male, mixed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands, err := search.FindCandidates(context.Background(), tt.criteria)
			if err != nil {
				t.Fatalf("FindCandidates: %v", err)
			}
			got := facilityIDs(cands)
			for _, s := range tt.include {
				if !got[s.facility.ID] {
					t.Errorf("expected facility %s (%s) in results", s.facility.ID, s.category.Name)
				}
			}
			for _, s := range tt.exclude {
				if got[s.facility.ID] {
					t.Errorf("facility %s (%s) must not match", s.facility.ID, s.category.Name)
				}
			}
		})
	}
}

func TestAvailabilityCreateDuplicatePair(t *testing.T) {
	db := startPostgres(t)
	s := seedFacility(t, db, 10, nil, nil)
	addAvailability(t, db, s, db_models.GenderAll, 0, 27)

	err := NewAvailabilityRepository(db).Create(context.Background(), &db_models.Availability{
		FacilityID:        s.facility.ID,
		CategoryID:        s.category.ID,
		AvailablePlaces:   1,
		TotalPlaces:       1,
		GenderSuitability: db_models.GenderAll,
		MaxAge:            27,
	})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestDeleteCascade(t *testing.T) {
	db := startPostgres(t)
	s := seedFacility(t, db, 5, nil, nil)
	p := &db_models.Place{FacilityID: s.facility.ID, CategoryID: s.category.ID, Name: "Platz 1", GenderSuitability: db_models.GenderAll, MaxAge: 27}
	if err := NewPlaceRepository(db).Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	facilities := NewFacilityRepository(db)
	if err := facilities.DeleteCascade(context.Background(), s.facility.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if f, err := facilities.FindByID(context.Background(), s.facility.ID); err != nil || f != nil {
		t.Fatalf("facility still present: %+v, %v", f, err)
	}
	if n, _ := NewPlaceRepository(db).CountByFacility(context.Background(), s.facility.ID); n != 0 {
		t.Fatalf("places left: %d", n)
	}
	if err := facilities.DeleteCascade(context.Background(), s.facility.ID); err == nil {
		t.Fatal("second delete should report not found")
	}
}
