package stores

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/auth"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func session(t *testing.T, validity time.Duration) models.Session {
	t.Helper()
	token, err := auth.GenerateToken(1, "alice", secret, validity)
	require.NoError(t, err)
	return models.Session{UserID: 1, Username: "alice", AccessToken: token}
}

func TestAuthStore_StartsUnhydrated(t *testing.T) {
	s := NewAuthStore()
	assert.IsType(t, Unhydrated{}, s.State())
	assert.False(t, s.IsHydrated())
	assert.Equal(t, "", s.Token())
}

func TestAuthStore_HydrateOnlyOnce(t *testing.T) {
	s := NewAuthStore()
	live := session(t, time.Hour)

	s.Hydrate(&live)
	require.True(t, s.IsHydrated())
	assert.Equal(t, Authenticated{Session: live}, s.State())

	s.Hydrate(nil)
	assert.Equal(t, Authenticated{Session: live}, s.State(), "second hydrate is ignored")
}

func TestAuthStore_HydrateWithoutOrExpiredSession(t *testing.T) {
	s := NewAuthStore()
	s.Hydrate(nil)
	assert.Equal(t, Anonymous{}, s.State())

	s = NewAuthStore()
	expired := session(t, -time.Minute)
	s.Hydrate(&expired)
	assert.Equal(t, Anonymous{}, s.State())
	assert.True(t, s.IsHydrated())
}

func TestAuthStore_UpdateAndReset(t *testing.T) {
	s := NewAuthStore()
	live := session(t, time.Hour)

	s.Update(live)
	assert.True(t, s.IsHydrated())
	assert.Equal(t, live.AccessToken, s.Token())

	got, ok := s.Session()
	require.True(t, ok)
	assert.Equal(t, "alice", got.Username)

	s.Reset()
	assert.Equal(t, Anonymous{}, s.State())
	assert.Equal(t, "", s.Token())
	_, ok = s.Session()
	assert.False(t, ok)
}

func TestAuthStore_UpdateRejectsBadTokens(t *testing.T) {
	s := NewAuthStore()
	s.Update(models.Session{Username: "x", AccessToken: "not-a-jwt"})
	assert.Equal(t, Anonymous{}, s.State())

	s.Update(models.Session{Username: "x"})
	assert.Equal(t, Anonymous{}, s.State())
}

func TestAuthStore_TokenDropsExpiredSession(t *testing.T) {
	s := NewAuthStore()
	live := session(t, time.Hour)
	s.Update(live)

	var states []AuthState
	s.Subscribe(func(st AuthState) { states = append(states, st) })

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	assert.Equal(t, "", s.Token())
	assert.Equal(t, Anonymous{}, s.State())
	assert.Equal(t, []AuthState{Anonymous{}}, states)
}

func TestAuthStore_StateAndSessionDropExpiredSession(t *testing.T) {
	now := time.Now()
	s := NewAuthStore(WithClock(func() time.Time { return now }))
	live := session(t, time.Hour)
	s.Update(live)

	var dropped []models.Session
	s.SubscribeExpired(func(sess models.Session) { dropped = append(dropped, sess) })
	s.Reset()
	s.Update(live)
	assert.Empty(t, dropped, "reset and update are not expiry")

	now = now.Add(2 * time.Hour)

	_, ok := s.Session()
	assert.False(t, ok)
	assert.Equal(t, Anonymous{}, s.State())
	assert.Equal(t, "", s.Token())
	require.Len(t, dropped, 1, "expiry reported once")
	assert.Equal(t, live.AccessToken, dropped[0].AccessToken)
}

func TestAuthStore_SubscribeAndUnsubscribe(t *testing.T) {
	s := NewAuthStore()
	var states []AuthState
	unsubscribe := s.Subscribe(func(st AuthState) { states = append(states, st) })

	s.Hydrate(nil)
	live := session(t, time.Hour)
	s.Update(live)
	unsubscribe()
	s.Reset()

	assert.Equal(t, []AuthState{Anonymous{}, Authenticated{Session: live}}, states)
}

func TestAuthState_ExhaustiveSwitch(t *testing.T) {
	describe := func(st AuthState) string {
		switch v := st.(type) {
		case Unhydrated:
			return "loading"
		case Anonymous:
			return "anonymous"
		case Authenticated:
			return v.Session.Username
		default:
			return "unknown"
		}
	}

	s := NewAuthStore()
	assert.Equal(t, "loading", describe(s.State()))
	s.Hydrate(nil)
	assert.Equal(t, "anonymous", describe(s.State()))
	s.Update(session(t, time.Hour))
	assert.Equal(t, "alice", describe(s.State()))
}
