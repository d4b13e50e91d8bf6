package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/repositories"
)

func fp(v float64) *float64 { return &v }

func candidate(id string, lat, lon *float64, places int, updated time.Time) repositories.SearchCandidate {
	return repositories.SearchCandidate{
		FacilityID:      uuid.MustParse(id),
		Latitude:        lat,
		Longitude:       lon,
		AvailablePlaces: places,
		LastUpdated:     updated,
	}
}

func ids(rs []rankedCandidate) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.FacilityID.String()[:1]
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankCandidates(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	// Berlin Mitte as the origin; b is ~1 km away, c ~10 km, a has no coordinates.
	cands := []repositories.SearchCandidate{
		candidate("a0000000-0000-0000-0000-000000000000", nil, nil, 7, t0.Add(3*time.Hour)),
		candidate("b0000000-0000-0000-0000-000000000000", fp(52.529), fp(13.405), 2, t0.Add(1*time.Hour)),
		candidate("c0000000-0000-0000-0000-000000000000", fp(52.61), fp(13.405), 5, t0),
		candidate("d0000000-0000-0000-0000-000000000000", fp(52.52), fp(13.405), 5, t0.Add(2*time.Hour)),
	}

	tests := []struct {
		name string
		req  request_models.SearchRequest
		want []string
	}{
		{
			name: "distance asc puts unlocated last",
			req:  request_models.SearchRequest{Latitude: fp(52.52), Longitude: fp(13.405), SortBy: "distance", SortOrder: "asc"},
			want: []string{"d", "b", "c", "a"},
		},
		{
			name: "distance desc puts unlocated first",
			req:  request_models.SearchRequest{Latitude: fp(52.52), Longitude: fp(13.405), SortBy: "distance", SortOrder: "desc"},
			want: []string{"a", "c", "b", "d"},
		},
		{
			name: "radius drops far and unlocated",
			req:  request_models.SearchRequest{Latitude: fp(52.52), Longitude: fp(13.405), Radius: fp(5), SortBy: "distance", SortOrder: "asc"},
			want: []string{"d", "b"},
		},
		{
			name: "available places desc breaks ties by id",
			req:  request_models.SearchRequest{SortBy: "availablePlaces", SortOrder: "desc"},
			want: []string{"a", "c", "d", "b"},
		},
		{
			name: "last updated desc",
			req:  request_models.SearchRequest{SortBy: "lastUpdated", SortOrder: "desc"},
			want: []string{"a", "d", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(rankCandidates(cands, tt.req))
			if !equalStrings(got, tt.want) {
				t.Fatalf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankCandidatesDistanceRounded(t *testing.T) {
	cands := []repositories.SearchCandidate{
		candidate("b0000000-0000-0000-0000-000000000000", fp(52.529), fp(13.405), 1, time.Now()),
	}
	got := rankCandidates(cands, request_models.SearchRequest{Latitude: fp(52.52), Longitude: fp(13.405)})
	if len(got) != 1 || got[0].Distance == nil {
		t.Fatalf("expected one located result, got %+v", got)
	}
	if *got[0].Distance != 1.0 {
		t.Fatalf("distance = %v, want 1.0", *got[0].Distance)
	}
}

func TestRankCandidatesWithoutOriginHasNoDistance(t *testing.T) {
	cands := []repositories.SearchCandidate{
		candidate("b0000000-0000-0000-0000-000000000000", fp(52.529), fp(13.405), 1, time.Now()),
	}
	got := rankCandidates(cands, request_models.SearchRequest{})
	if got[0].Distance != nil {
		t.Fatalf("expected nil distance, got %v", *got[0].Distance)
	}
}

func TestPageOf(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	if got := pageOf(items, 2, 2); len(got) != 2 || got[0] != 3 {
		t.Fatalf("page 2 = %v", got)
	}
	if got := pageOf(items, 3, 2); len(got) != 1 || got[0] != 5 {
		t.Fatalf("page 3 = %v", got)
	}
	if got := pageOf(items, 4, 2); got == nil || len(got) != 0 {
		t.Fatalf("page past end = %#v", got)
	}
}
