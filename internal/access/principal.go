// Package access resolves who is calling and what they may touch.
//
// A Principal is built once per request by middleware and passed explicitly
// into services. Admins reach every carrier; carrier-role accounts only the
// carriers they are associated with.
package access

import (
	"github.com/google/uuid"

	"freiplatz/internal/models/db_models"
	"freiplatz/pkg/utils"
)

type Principal struct {
	UserID uuid.UUID
	Role   db_models.Role

	carriers map[uuid.UUID]struct{}
	enforcer *Enforcer
}

func NewPrincipal(userID uuid.UUID, role db_models.Role, carrierIDs []uuid.UUID, enforcer *Enforcer) *Principal {
	set := make(map[uuid.UUID]struct{}, len(carrierIDs))
	for _, id := range carrierIDs {
		set[id] = struct{}{}
	}
	return &Principal{UserID: userID, Role: role, carriers: set, enforcer: enforcer}
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == db_models.RoleAdmin
}

// CarrierScope returns the carriers visible to the principal. all is true
// for admins, in which case ids is nil.
func (p *Principal) CarrierScope() (ids []uuid.UUID, all bool) {
	if p.IsAdmin() {
		return nil, true
	}
	if p == nil {
		return []uuid.UUID{}, false
	}
	ids = make([]uuid.UUID, 0, len(p.carriers))
	for id := range p.carriers {
		ids = append(ids, id)
	}
	return ids, false
}

func (p *Principal) CanAccessCarrier(carrierID uuid.UUID) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	_, ok := p.carriers[carrierID]
	return ok
}

// RequireCarrier returns utils.ErrForbidden unless the carrier is in scope.
func (p *Principal) RequireCarrier(carrierID uuid.UUID) error {
	if !p.CanAccessCarrier(carrierID) {
		return utils.ErrForbidden
	}
	return nil
}

func (p *Principal) Can(resource, action string) bool {
	if p == nil || p.enforcer == nil {
		return false
	}
	return p.enforcer.Allowed(string(p.Role), resource, action)
}

func (p *Principal) Require(resource, action string) error {
	if !p.Can(resource, action) {
		return utils.ErrForbidden
	}
	return nil
}

// UserRef is the user id as stored on audit records; nil for anonymous calls.
func (p *Principal) UserRef() *uuid.UUID {
	if p == nil || p.UserID == uuid.Nil {
		return nil
	}
	id := p.UserID
	return &id
}
