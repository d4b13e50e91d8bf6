package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	"freiplatz/pkg/utils"
)

func TestPlanAllocation(t *testing.T) {
	template := db_models.Place{FacilityID: uuid.New(), CategoryID: uuid.New(), GenderSuitability: db_models.GenderAll}

	tests := []struct {
		name      string
		requested int
		max       int
		current   int
		wantNames []string
		wantErr   error
	}{
		{name: "fills remaining", requested: 2, max: 5, current: 3, wantNames: []string{"Platz 4", "Platz 5"}},
		{name: "clamps to remaining", requested: 10, max: 5, current: 3, wantNames: []string{"Platz 4", "Platz 5"}},
		{name: "empty facility", requested: 1, max: 20, current: 0, wantNames: []string{"Platz 1"}},
		{name: "full", requested: 1, max: 5, current: 5, wantErr: utils.ErrCapacityExceeded},
		{name: "over full", requested: 1, max: 5, current: 7, wantErr: utils.ErrCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			places, err := planAllocation(template, tt.requested, tt.max, tt.current)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(places) != len(tt.wantNames) {
				t.Fatalf("got %d places, want %d", len(places), len(tt.wantNames))
			}
			for i, p := range places {
				if p.Name != tt.wantNames[i] {
					t.Errorf("place %d name = %q, want %q", i, p.Name, tt.wantNames[i])
				}
				if p.FacilityID != template.FacilityID || p.CategoryID != template.CategoryID {
					t.Errorf("place %d lost template fields", i)
				}
			}
		})
	}
}
