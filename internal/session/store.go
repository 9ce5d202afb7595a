package session

import (
	"context"
	"sync"

	"github.com/skillsphere/skillsphere/internal/api"
	"github.com/skillsphere/skillsphere/internal/errors"
	"github.com/skillsphere/skillsphere/internal/log"
)

// Backend is the slice of the API client the store needs
type Backend interface {
	CurrentSession(ctx context.Context) (api.SessionPayload, error)
	Logout(ctx context.Context) error
}

// Store owns the process-wide Session singleton.
//
// The session is bootstrapped once at startup, replaced wholesale after
// login, signup, or onboarding completion, and reset on logout. Every
// consumer reads through the store; nobody holds a mutable reference.
type Store struct {
	mu          sync.RWMutex
	session     Session
	loading     bool
	subscribers map[int]func(Session)
	nextSubID   int

	backend Backend
	logger  *log.Logger
}

// NewStore creates a store in the loading state. Consumers observe
// loading=true until Bootstrap resolves, which is what keeps the route
// guard from bouncing an authenticated visitor to /auth during startup.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Store{
		session:     LoggedOut(),
		loading:     true,
		subscribers: make(map[int]func(Session)),
		backend:     backend,
		logger:      logger,
	}
}

// Bootstrap fetches the session from the backend exactly once. Any
// failure — transport, status, or a payload violating the session
// invariants — degrades to the logged-out session. It never returns an
// error: the gate must always end up in a usable state.
func (s *Store) Bootstrap(ctx context.Context) {
	payload, err := s.backend.CurrentSession(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("session bootstrap failed, continuing logged out")
		s.finishBootstrap(LoggedOut())
		return
	}

	sess, err := FromPayload(payload)
	if err != nil {
		s.logger.WithError(err).Warn("session payload rejected, continuing logged out")
		s.finishBootstrap(LoggedOut())
		return
	}

	s.finishBootstrap(sess)
}

func (s *Store) finishBootstrap(sess Session) {
	s.mu.Lock()
	s.session = sess
	s.loading = false
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// Current returns the session value
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Loading reports whether the initial bootstrap is still pending
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot returns the session and the loading flag as one consistent
// read. The route guard and the chrome must decide on the same
// snapshot, so they take it once and share it.
func (s *Store) Snapshot() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.loading
}

// Replace atomically swaps the session and notifies subscribers
// synchronously, before control returns to the caller.
func (s *Store) Replace(sess Session) {
	s.mu.Lock()
	s.session = sess
	s.loading = false
	subs := s.snapshotSubscribersLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// Logout invokes the backend logout mutation and then unconditionally
// replaces the session with the logged-out value — the client must
// never stay stuck showing a stale authenticated session after the
// user asked to leave. The mutation's error is returned so the caller
// can show a warning, but local state is already logged out.
func (s *Store) Logout(ctx context.Context) error {
	err := s.backend.Logout(ctx)
	s.Replace(LoggedOut())

	if err != nil {
		s.logger.WithError(err).Warn("backend logout failed, local session cleared anyway")
		return errors.Wrap(errors.ErrCodeSessionLogoutFailed, "backend logout failed", err).
			WithSuggestion("Your local session has been cleared; the server-side session may outlive it")
	}
	return nil
}

// Subscribe registers fn to be called on every session change. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) snapshotSubscribersLocked() []func(Session) {
	subs := make([]func(Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}
