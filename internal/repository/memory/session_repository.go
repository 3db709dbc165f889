package memory

import (
	"context"
	"sync"
	"time"

	"mindly-be/internal/entity"
	"mindly-be/internal/repository/contract"
	"mindly-be/pkg/wellness"

	"github.com/patrickmn/go-cache"
)

// sessionSlot guards one session; unrelated sessions never share a lock.
type sessionSlot struct {
	mu        sync.Mutex
	history   []string
	log       []entity.MetricsEntry
	nextIndex int
}

type SessionRepository struct {
	// mu orders slot creation against idle refreshes
	mu       sync.Mutex
	cache    *cache.Cache
	ttl      time.Duration
	maxTurns int
}

var _ contract.SessionRepository = &SessionRepository{}

// NewSessionRepository stores sessions in process memory. A ttl of 0 keeps
// sessions until the process exits; maxTurns of 0 disables history eviction.
func NewSessionRepository(ttl time.Duration, maxTurns int) *SessionRepository {
	expiration := cache.NoExpiration
	var cleanup time.Duration
	if ttl > 0 {
		expiration = ttl
		cleanup = ttl / 2
	}
	return &SessionRepository{
		cache:    cache.New(expiration, cleanup),
		ttl:      expiration,
		maxTurns: maxTurns,
	}
}

func (r *SessionRepository) slot(sessionId string) *sessionSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slotLocked(sessionId)
}

func (r *SessionRepository) slotLocked(sessionId string) *sessionSlot {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*sessionSlot)
	}
	s := &sessionSlot{}
	r.cache.Set(sessionId, s, cache.DefaultExpiration)
	return s
}

// lockCurrent locks s, or the slot that replaced it after it expired, and
// refreshes its idle timer. The caller unlocks the returned slot.
func (r *SessionRepository) lockCurrent(sessionId string, s *sessionSlot) *sessionSlot {
	for {
		s.mu.Lock()
		r.mu.Lock()
		current := r.slotLocked(sessionId)
		if current == s && r.ttl != cache.NoExpiration {
			r.cache.Set(sessionId, s, cache.DefaultExpiration)
		}
		r.mu.Unlock()
		if current == s {
			return s
		}
		s.mu.Unlock()
		s = current
	}
}

func (r *SessionRepository) GetOrCreate(ctx context.Context, sessionId string) (*entity.Session, error) {
	s := r.slot(sessionId)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(sessionId), nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionId string) (*entity.Session, bool, error) {
	x, found := r.cache.Get(sessionId)
	if !found {
		return nil, false, nil
	}
	s := x.(*sessionSlot)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(sessionId), true, nil
}

func (r *SessionRepository) AppendTurn(ctx context.Context, sessionId, userMessage, botReply string, metrics wellness.Metrics) (entity.MetricsEntry, error) {
	s := r.lockCurrent(sessionId, r.slot(sessionId))
	defer s.mu.Unlock()

	entry := entity.MetricsEntry{
		Index:   s.nextIndex,
		Metrics: metrics.Clone(),
		Message: userMessage,
	}
	s.nextIndex++
	s.history = append(s.history, userMessage, botReply)
	s.log = append(s.log, entry)

	if r.maxTurns > 0 && len(s.log) > r.maxTurns {
		drop := len(s.log) - r.maxTurns
		s.log = append([]entity.MetricsEntry(nil), s.log[drop:]...)
		s.history = append([]string(nil), s.history[2*drop:]...)
	}
	return entry, nil
}

func (s *sessionSlot) snapshot(id string) *entity.Session {
	history := make([]string, len(s.history))
	copy(history, s.history)
	log := make([]entity.MetricsEntry, len(s.log))
	copy(log, s.log)
	return &entity.Session{
		Id:         id,
		History:    history,
		MetricsLog: log,
	}
}
