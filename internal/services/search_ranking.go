package services

import (
	"cmp"
	"slices"

	"freiplatz/internal/models/request_models"
	"freiplatz/internal/repositories"
	"freiplatz/pkg/utils"
)

type rankedCandidate struct {
	repositories.SearchCandidate
	// Distance is km rounded to one decimal; nil when either side has no
	// coordinates.
	Distance *float64
}

// rankCandidates computes distances, applies the radius filter and orders
// candidates by req.SortBy / req.SortOrder. Facility id breaks ties.
//
// Facilities without a distance sort after located ones in ascending order
// and before them in descending order.
func rankCandidates(cands []repositories.SearchCandidate, req request_models.SearchRequest) []rankedCandidate {
	withCoords := req.HasCoordinates()
	out := make([]rankedCandidate, 0, len(cands))

	for _, c := range cands {
		rc := rankedCandidate{SearchCandidate: c}
		if withCoords && c.Latitude != nil && c.Longitude != nil {
			raw := utils.HaversineKm(*req.Latitude, *req.Longitude, *c.Latitude, *c.Longitude)
			if req.Radius != nil && raw > *req.Radius {
				continue
			}
			d := utils.RoundTo(raw, 1)
			rc.Distance = &d
		} else if withCoords && req.Radius != nil {
			continue
		}
		out = append(out, rc)
	}

	desc := req.SortOrder == request_models.SortDesc
	slices.SortStableFunc(out, func(a, b rankedCandidate) int {
		var c int
		switch req.SortBy {
		case request_models.SortByDistance:
			c = compareDistance(a.Distance, b.Distance)
		case request_models.SortByAvailablePlaces:
			c = cmp.Compare(a.AvailablePlaces, b.AvailablePlaces)
		default:
			c = a.LastUpdated.Compare(b.LastUpdated)
		}
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.FacilityID.String(), b.FacilityID.String())
	})
	return out
}

// compareDistance orders nil after every value.
func compareDistance(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*a, *b)
	}
}

func pageOf[T any](items []T, page, limit int) []T {
	start := utils.Offset(page, limit)
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
