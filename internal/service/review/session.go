package review

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// defaultSessionTTL is how long a just-reviewed card is held back from
// GetNextCard. Long enough to avoid re-serving within one sitting, short
// enough that an overdue card comes back on the next session.
const defaultSessionTTL = 10 * time.Minute

// sessionArena tracks recently reviewed cards with a per-entry TTL. Expired
// entries are removed lazily on read, so the arena stays bounded by the
// number of cards reviewed within one TTL window and needs no sweeper
// goroutine.
type sessionArena struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[uuid.UUID]time.Time
}

func newSessionArena(ttl time.Duration) *sessionArena {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &sessionArena{
		ttl:  ttl,
		seen: make(map[uuid.UUID]time.Time),
	}
}

// Remember marks a card as reviewed at the given time.
func (a *sessionArena) Remember(cardID uuid.UUID, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.seen[cardID] = now
}

// Contains reports whether the card was reviewed within the TTL window,
// evicting any expired entries it encounters.
func (a *sessionArena) Contains(cardID uuid.UUID, now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, at := range a.seen {
		if now.Sub(at) >= a.ttl {
			delete(a.seen, id)
		}
	}

	_, ok := a.seen[cardID]
	return ok
}
