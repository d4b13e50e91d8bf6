package access

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	mem "freiplatz/pkg/memcache"
	"freiplatz/pkg/utils"
)

// CarrierLookup loads carrier associations for an account.
type CarrierLookup interface {
	CarrierIDsForAccount(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error)
}

type Resolver struct {
	lookup   CarrierLookup
	cache    mem.CarrierAccessStore
	ttl      time.Duration
	enforcer *Enforcer
}

func NewResolver(lookup CarrierLookup, cache mem.CarrierAccessStore, ttl time.Duration, enforcer *Enforcer) *Resolver {
	return &Resolver{lookup: lookup, cache: cache, ttl: ttl, enforcer: enforcer}
}

func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, role string) (*Principal, error) {
	rl := db_models.Role(role)
	if !rl.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", utils.ErrUnauthorized, role)
	}

	var carriers []uuid.UUID
	if rl == db_models.RoleCarrier {
		ids, err := r.carrierIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		carriers = ids
	}

	return NewPrincipal(userID, rl, carriers, r.enforcer), nil
}

// Invalidate drops cached associations after they change.
func (r *Resolver) Invalidate(accountID uuid.UUID) {
	r.cache.Invalidate(accountID)
}

func (r *Resolver) carrierIDs(ctx context.Context, accountID uuid.UUID) ([]uuid.UUID, error) {
	if ids, ok := r.cache.Get(accountID); ok {
		return ids, nil
	}
	ids, err := r.lookup.CarrierIDsForAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	r.cache.Set(accountID, ids, r.ttl)
	return ids, nil
}
