package mem

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CarrierAccessStore caches the carrier ids an account may manage.
type CarrierAccessStore interface {
	Set(accountID uuid.UUID, carrierIDs []uuid.UUID, ttl time.Duration)

	// Get returns the cached ids; false when missing or expired.
	Get(accountID uuid.UUID) ([]uuid.UUID, bool)

	Invalidate(accountID uuid.UUID)
}

type entry struct {
	carrierIDs []uuid.UUID
	expiresAt  time.Time
}

type CarrierAccess struct {
	mu   sync.RWMutex
	data map[uuid.UUID]entry
	now  func() time.Time
}

func NewCarrierAccess() *CarrierAccess {
	return &CarrierAccess{
		data: make(map[uuid.UUID]entry),
		now:  time.Now,
	}
}

func (s *CarrierAccess) Set(accountID uuid.UUID, carrierIDs []uuid.UUID, ttl time.Duration) {
	ids := make([]uuid.UUID, len(carrierIDs))
	copy(ids, carrierIDs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[accountID] = entry{
		carrierIDs: ids,
		expiresAt:  s.now().Add(ttl),
	}
}

func (s *CarrierAccess) Get(accountID uuid.UUID) ([]uuid.UUID, bool) {
	s.mu.RLock()
	e, ok := s.data[accountID]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.Invalidate(accountID)
		return nil, false
	}
	return e.carrierIDs, true
}

func (s *CarrierAccess) Invalidate(accountID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, accountID)
}
