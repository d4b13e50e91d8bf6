package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	mem "freiplatz/pkg/memcache"
	"freiplatz/pkg/utils"
)

func TestEnforcerPolicies(t *testing.T) {
	e, err := NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}

	tests := []struct {
		role, res, act string
		want           bool
	}{
		{"admin", ResSystemLog, ActRead, true},
		{"admin", ResCarrier, ActWrite, true},
		{"carrier", ResPlace, ActWrite, true},
		{"carrier", ResStatistics, ActRead, true},
		{"carrier", ResSearch, ActRead, false},
		{"carrier", ResCategory, ActWrite, false},
		{"manager", ResSearch, ActRead, true},
		{"manager", ResStatistics, ActRead, false},
		{"manager", ResFacility, ActWrite, false},
		{"leadership", ResDashboard, ActRead, true},
		{"leadership", ResPlace, ActWrite, false},
		{"nobody", ResSearch, ActRead, false},
	}
	for _, tt := range tests {
		if got := e.Allowed(tt.role, tt.res, tt.act); got != tt.want {
			t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tt.role, tt.res, tt.act, got, tt.want)
		}
	}
}

func TestPrincipalCarrierScope(t *testing.T) {
	e, _ := NewEnforcer()
	own := uuid.New()
	p := NewPrincipal(uuid.New(), db_models.RoleCarrier, []uuid.UUID{own}, e)

	if err := p.RequireCarrier(own); err != nil {
		t.Fatalf("own carrier rejected: %v", err)
	}
	if err := p.RequireCarrier(uuid.New()); !errors.Is(err, utils.ErrForbidden) {
		t.Fatalf("foreign carrier err = %v", err)
	}
	ids, all := p.CarrierScope()
	if all || len(ids) != 1 || ids[0] != own {
		t.Fatalf("scope = %v all=%v", ids, all)
	}

	admin := NewPrincipal(uuid.New(), db_models.RoleAdmin, nil, e)
	if ids, all := admin.CarrierScope(); !all || ids != nil {
		t.Fatalf("admin scope = %v all=%v", ids, all)
	}
	if !admin.CanAccessCarrier(uuid.New()) {
		t.Fatal("admin should reach every carrier")
	}

	var anon *Principal
	if anon.Can(ResSearch, ActRead) || anon.UserRef() != nil {
		t.Fatal("nil principal must have no rights")
	}
}

type countingLookup struct {
	calls int
	ids   []uuid.UUID
}

func (l *countingLookup) CarrierIDsForAccount(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	l.calls++
	return l.ids, nil
}

func TestResolverCachesCarrierSet(t *testing.T) {
	e, _ := NewEnforcer()
	carrier := uuid.New()
	lookup := &countingLookup{ids: []uuid.UUID{carrier}}
	r := NewResolver(lookup, mem.NewCarrierAccess(), time.Minute, e)
	account := uuid.New()

	for i := 0; i < 3; i++ {
		p, err := r.Resolve(context.Background(), account, "carrier")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if !p.CanAccessCarrier(carrier) {
			t.Fatal("carrier not in scope")
		}
	}
	if lookup.calls != 1 {
		t.Fatalf("lookup calls = %d, want 1", lookup.calls)
	}

	r.Invalidate(account)
	if _, err := r.Resolve(context.Background(), account, "carrier"); err != nil {
		t.Fatal(err)
	}
	if lookup.calls != 2 {
		t.Fatalf("lookup calls after invalidate = %d, want 2", lookup.calls)
	}
}

func TestResolverRejectsUnknownRole(t *testing.T) {
	e, _ := NewEnforcer()
	r := NewResolver(&countingLookup{}, mem.NewCarrierAccess(), time.Minute, e)

	if _, err := r.Resolve(context.Background(), uuid.New(), "superuser"); !errors.Is(err, utils.ErrUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}
