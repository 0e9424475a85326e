package stores

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/auth"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
)

// AuthState is one of Unhydrated, Anonymous or Authenticated.
type AuthState interface {
	authState()
}

// Unhydrated means the persisted session has not been restored yet.
type Unhydrated struct{}

// Anonymous means there is no live session.
type Anonymous struct{}

// Authenticated carries the live session.
type Authenticated struct {
	Session models.Session
}

func (Unhydrated) authState()    {}
func (Anonymous) authState()     {}
func (Authenticated) authState() {}

// AuthStore is the authentication state machine:
//
//	Unhydrated --Hydrate--> Anonymous | Authenticated
//	Anonymous  --Update---> Authenticated
//	*          --Reset----> Anonymous
//
// A token whose exp claim has passed is treated as no session. Every read
// of the state drops an expired session and notifies the expiry listeners.
type AuthStore struct {
	mu       sync.Mutex
	state    AuthState
	hydrated bool
	now      func() time.Time

	subs    subscribers[AuthState]
	expired subscribers[models.Session]
}

// AuthStoreOption configures an AuthStore.
type AuthStoreOption func(*AuthStore)

// WithClock sets the time source used for token expiry checks.
func WithClock(now func() time.Time) AuthStoreOption {
	return func(s *AuthStore) { s.now = now }
}

func NewAuthStore(opts ...AuthStoreOption) *AuthStore {
	s := &AuthStore{state: Unhydrated{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *AuthStore) State() AuthState {
	s.mu.Lock()
	state := s.state
	a, ok := state.(Authenticated)
	if !ok || s.live(a.Session) {
		s.mu.Unlock()
		return state
	}
	s.state = Anonymous{}
	s.mu.Unlock()

	s.subs.notify(Anonymous{})
	s.expired.notify(a.Session)
	return Anonymous{}
}

// IsHydrated reports whether Hydrate has run.
func (s *AuthStore) IsHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Session returns the live session, if any.
func (s *AuthStore) Session() (models.Session, bool) {
	if a, ok := s.State().(Authenticated); ok {
		return a.Session, true
	}
	return models.Session{}, false
}

// Hydrate sets the initial state from a persisted session. Only the first
// call takes effect. A nil or expired session hydrates to Anonymous.
func (s *AuthStore) Hydrate(session *models.Session) {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.hydrated = true
	if session != nil && s.live(*session) {
		s.state = Authenticated{Session: *session}
	} else {
		s.state = Anonymous{}
	}
	state := s.state
	s.mu.Unlock()

	s.subs.notify(state)
}

// Update makes session the live session. An expired or malformed token
// resets the store instead.
func (s *AuthStore) Update(session models.Session) {
	s.mu.Lock()
	s.hydrated = true
	if s.live(session) {
		s.state = Authenticated{Session: session}
	} else {
		s.state = Anonymous{}
	}
	state := s.state
	s.mu.Unlock()

	s.subs.notify(state)
}

// Reset drops the live session.
func (s *AuthStore) Reset() {
	s.mu.Lock()
	s.hydrated = true
	s.state = Anonymous{}
	s.mu.Unlock()

	s.subs.notify(Anonymous{})
}

// Token returns the bearer token of the live session or "".
func (s *AuthStore) Token() string {
	session, _ := s.Session()
	return session.AccessToken
}

// Subscribe registers fn for state changes and returns an unsubscribe func.
func (s *AuthStore) Subscribe(fn func(AuthState)) func() {
	return s.subs.add(fn)
}

// SubscribeExpired registers fn for sessions dropped because their token
// expired. Reset and Update never trigger it.
func (s *AuthStore) SubscribeExpired(fn func(models.Session)) func() {
	return s.expired.add(fn)
}

func (s *AuthStore) live(session models.Session) bool {
	return session.AccessToken != "" && auth.CheckToken(session.AccessToken, s.now()) == nil
}
