package utils

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tol                    float64
	}{
		{name: "same point", lat1: 52.52, lon1: 13.405, lat2: 52.52, lon2: 13.405, want: 0, tol: 1e-9},
		{name: "berlin to munich", lat1: 52.52, lon1: 13.405, lat2: 48.1351, lon2: 11.582, want: 504, tol: 2},
		{name: "one degree of latitude", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 111.19, tol: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tol {
				t.Fatalf("HaversineKm = %.4f, want %.4f ± %.4f", got, tt.want, tt.tol)
			}
			back := HaversineKm(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(got-back) > 1e-9 {
				t.Fatalf("distance not symmetric: %.9f vs %.9f", got, back)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(3.14159, 2); got != 3.14 {
		t.Fatalf("RoundTo = %v, want 3.14", got)
	}
	if got := RoundTo(1.25, 1); got != 1.3 {
		t.Fatalf("RoundTo = %v, want 1.3", got)
	}
}
