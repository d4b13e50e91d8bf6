package services

import (
	"testing"

	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	"freiplatz/internal/repositories"
)

func TestAggregatePlaceStatistics(t *testing.T) {
	wohnen := uuid.New()
	betreut := uuid.New()
	rows := []repositories.PlaceStatRow{
		{CategoryID: wohnen, CategoryName: "Wohngruppe", GenderSuitability: db_models.GenderMale, Total: 4, Occupied: 3},
		{CategoryID: wohnen, CategoryName: "Wohngruppe", GenderSuitability: db_models.GenderAll, Total: 2, Occupied: 0},
		{CategoryID: betreut, CategoryName: "Betreutes Wohnen", GenderSuitability: db_models.GenderFemale, Total: 2, Occupied: 1},
	}

	got := aggregatePlaceStatistics(rows)

	if got.TotalPlaces != 8 || got.OccupiedPlaces != 4 || got.AvailablePlaces != 4 {
		t.Fatalf("totals = %d/%d/%d", got.TotalPlaces, got.OccupiedPlaces, got.AvailablePlaces)
	}
	if got.OccupiedPlaces+got.AvailablePlaces != got.TotalPlaces {
		t.Fatal("occupied + available must equal total")
	}
	if got.OccupancyRate != 50 {
		t.Fatalf("occupancy rate = %d, want 50", got.OccupancyRate)
	}
	g := got.GenderDistribution
	if g.MaleOnly != 4 || g.FemaleOnly != 2 || g.AllGender != 2 {
		t.Fatalf("gender distribution = %+v", g)
	}
	if len(got.CategoryDistribution) != 2 {
		t.Fatalf("categories = %+v", got.CategoryDistribution)
	}
	if c := got.CategoryDistribution[0]; c.CategoryName != "Wohngruppe" || c.Count != 6 {
		t.Fatalf("first category = %+v", c)
	}
}

func TestAggregatePlaceStatisticsEmpty(t *testing.T) {
	got := aggregatePlaceStatistics(nil)
	if got.TotalPlaces != 0 || got.OccupancyRate != 0 {
		t.Fatalf("empty stats = %+v", got)
	}
	if got.CategoryDistribution == nil {
		t.Fatal("category distribution should be an empty list, not nil")
	}
}

func TestAggregateHourStatistics(t *testing.T) {
	cat := uuid.New()
	rows := []repositories.HourStatRow{
		{CategoryID: cat, CategoryName: "Fachleistungsstunden", GenderSuitability: db_models.GenderAll, TotalHours: 30, AvailableHours: 10},
		{CategoryID: cat, CategoryName: "Fachleistungsstunden", GenderSuitability: db_models.GenderFemale, TotalHours: 10, AvailableHours: 10},
	}

	got := aggregateHourStatistics(rows)

	if got.TotalHours != 40 || got.AvailableHours != 20 || got.UsedHours != 20 {
		t.Fatalf("hours = %d/%d/%d", got.TotalHours, got.AvailableHours, got.UsedHours)
	}
	if got.UtilizationRate != 50 {
		t.Fatalf("utilization = %d, want 50", got.UtilizationRate)
	}
	if got.GenderDistribution.AllGender != 30 || got.GenderDistribution.FemaleOnly != 10 {
		t.Fatalf("gender = %+v", got.GenderDistribution)
	}
	if len(got.CategoryDistribution) != 1 || got.CategoryDistribution[0].TotalHours != 40 {
		t.Fatalf("categories = %+v", got.CategoryDistribution)
	}
}
