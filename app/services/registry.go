package services

import (
	"context"
	"sync"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"go.uber.org/zap"
)

const (
	// DefaultSessionIdleTTL is how long an unused session stays attached.
	DefaultSessionIdleTTL = 30 * time.Minute

	sweepInterval = time.Minute
)

// Session is the signed-in user together with their attached cart and
// wishlist mirrors.
type Session struct {
	Cart     *CartSync
	Wishlist *WishlistSync

	mu       sync.RWMutex
	user     *models.User
	lastUsed time.Time
}

func NewSession(cartRepo repositories.CartItemRepositoryImpl, wishlistRepo repositories.WishlistRepositoryImpl) *Session {
	return &Session{
		Cart:     NewCartSync(cartRepo),
		Wishlist: NewWishlistSync(wishlistRepo),
	}
}

func (s *Session) Attach(ctx context.Context, user *models.User) error {
	if user == nil || user.ID == "" {
		return ErrNotAuthenticated
	}
	if err := s.Cart.Attach(ctx, user); err != nil {
		return err
	}
	if err := s.Wishlist.Attach(ctx, user); err != nil {
		s.Cart.Detach()
		return err
	}
	s.setUser(user)
	return nil
}

func (s *Session) Detach() {
	s.Cart.Detach()
	s.Wishlist.Detach()
	s.setUser(nil)
}

// CurrentUser returns the user the session is attached for, or nil once
// detached.
func (s *Session) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) setUser(user *models.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// refresh replaces the cached user with the one loaded for the current
// request, so profile and role edits show up, and marks the session used.
func (s *Session) refresh(user *models.User, now time.Time) {
	s.mu.Lock()
	if s.user != nil {
		s.user = user
	}
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUsed
}

// SyncRegistry hands out one attached Session per signed-in user. Sessions
// unused for longer than the idle TTL are detached on a later Acquire.
type SyncRegistry struct {
	cartRepo     repositories.CartItemRepositoryImpl
	wishlistRepo repositories.WishlistRepositoryImpl
	idleTTL      time.Duration
	now          func() time.Time

	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
}

func NewSyncRegistry(cartRepo repositories.CartItemRepositoryImpl, wishlistRepo repositories.WishlistRepositoryImpl) *SyncRegistry {
	return &SyncRegistry{
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		idleTTL:      DefaultSessionIdleTTL,
		now:          time.Now,
		sessions:     make(map[string]*Session),
	}
}

// Acquire returns the user's session, attaching it on first use.
func (r *SyncRegistry) Acquire(ctx context.Context, user *models.User) (*Session, error) {
	if user == nil || user.ID == "" {
		return nil, ErrNotAuthenticated
	}
	now := r.now()
	r.evictIdle(now, user.ID)

	r.mu.Lock()
	if s, ok := r.sessions[user.ID]; ok {
		s.refresh(user, now)
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	s := NewSession(r.cartRepo, r.wishlistRepo)
	if err := s.Attach(ctx, user); err != nil {
		return nil, err
	}
	s.refresh(user, now)

	r.mu.Lock()
	if existing, ok := r.sessions[user.ID]; ok {
		existing.refresh(user, now)
		r.mu.Unlock()
		s.Detach()
		return existing, nil
	}
	r.sessions[user.ID] = s
	r.mu.Unlock()
	return s, nil
}

// evictIdle detaches sessions idle for longer than the TTL, at most once
// per sweep interval. The session of keep is never evicted.
func (r *SyncRegistry) evictIdle(now time.Time, keep string) {
	r.mu.Lock()
	if now.Sub(r.lastSweep) < sweepInterval {
		r.mu.Unlock()
		return
	}
	r.lastSweep = now
	var idle []*Session
	for uid, s := range r.sessions {
		if uid == keep {
			continue
		}
		if now.Sub(s.idleSince()) > r.idleTTL {
			idle = append(idle, s)
			delete(r.sessions, uid)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		s.Detach()
	}
	if len(idle) > 0 {
		zap.S().Debugf("SyncRegistry.evictIdle: detached %d idle sessions", len(idle))
	}
}

// Release detaches the user's session, if any.
func (r *SyncRegistry) Release(uid string) {
	r.mu.Lock()
	s, ok := r.sessions[uid]
	delete(r.sessions, uid)
	r.mu.Unlock()
	if ok {
		s.Detach()
	}
}

func (r *SyncRegistry) Close() {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range all {
		s.Detach()
	}
}

func (r *SyncRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
