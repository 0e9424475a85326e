package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
)

// AuthService coordinates the auth store with the API and the persisted
// session.
//
// Contract:
//   - Restore: read the persisted session once at startup and hydrate the
//     store; stale or unreadable records are deleted.
//   - Login / Register: authenticate against the server, persist, update.
//   - Logout: notify the server (best effort), delete and reset.
//   - Me: refresh the user fields of the live session.
//   - HandleUnauthorized: the HTTP client's 401 hook.
type AuthService interface {
	Restore(ctx context.Context) (stores.AuthState, error)
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Register(ctx context.Context, reg models.Registration) (*models.Session, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Session, error)
	Ping(ctx context.Context) error
	HandleUnauthorized(ctx context.Context)
}

type authService struct {
	client  client.Client
	store   *stores.AuthStore
	storage SessionStorage
	logger  logging.Logger
}

func NewAuthService(c client.Client, store *stores.AuthStore, storage SessionStorage, logger logging.Logger) AuthService {
	a := &authService{client: c, store: store, storage: storage, logger: logger}
	store.SubscribeExpired(a.handleExpired)
	return a
}

// Restore hydrates the store from the persisted session. Storage errors are
// logged and degrade to an anonymous start; Restore always hydrates.
func (a *authService) Restore(ctx context.Context) (stores.AuthState, error) {
	if a.store.IsHydrated() {
		return a.store.State(), nil
	}

	session, err := a.storage.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "persisted session is unreadable, discarding", "error", err)
		a.deletePersisted(ctx)
		a.store.Hydrate(nil)
		return a.store.State(), nil
	}

	a.store.Hydrate(session)

	state := a.store.State()
	if _, ok := state.(stores.Authenticated); !ok && session != nil {
		a.logger.Info(ctx, "persisted session expired, discarding", "username", session.Username)
		a.deletePersisted(ctx)
	}
	return state, nil
}

func (a *authService) Login(ctx context.Context, creds models.Credentials) (*models.Session, error) {
	session, err := a.client.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := a.establish(ctx, *session); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "logged in", "username", session.Username)
	return session, nil
}

func (a *authService) Register(ctx context.Context, reg models.Registration) (*models.Session, error) {
	session, err := a.client.Register(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := a.establish(ctx, *session); err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "registered", "username", session.Username)
	return session, nil
}

// establish persists and activates a fresh session from the server.
func (a *authService) establish(ctx context.Context, session models.Session) error {
	a.store.Update(session)
	if _, ok := a.store.State().(stores.Authenticated); !ok {
		return fmt.Errorf("server returned an unusable token: %w", common.ErrInvalidToken)
	}
	if err := a.storage.Save(ctx, session); err != nil {
		// The session stays usable for this run.
		a.logger.Warn(ctx, "failed to persist session", "error", err)
	}
	return nil
}

// Logout clears local state even when the server call fails.
func (a *authService) Logout(ctx context.Context) error {
	var serverErr error
	if a.store.Token() != "" {
		if err := a.client.Logout(ctx); err != nil && !errors.Is(err, client.ErrUnauthorized) {
			a.logger.Warn(ctx, "server logout failed", "error", err)
			serverErr = fmt.Errorf("logout: %w", err)
		}
	}

	a.deletePersisted(ctx)
	a.store.Reset()
	return serverErr
}

func (a *authService) Me(ctx context.Context) (*models.Session, error) {
	if err := requireSession(a.store); err != nil {
		return nil, err
	}
	current, _ := a.store.Session()

	user, err := a.client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}

	updated := current.WithUser(*user)
	a.store.Update(updated)
	if err := a.storage.Save(ctx, updated); err != nil {
		a.logger.Warn(ctx, "failed to persist session", "error", err)
	}
	return &updated, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) HandleUnauthorized(ctx context.Context) {
	a.logger.Info(ctx, "server rejected the session, signing out")
	a.deletePersisted(ctx)
	a.store.Reset()
}

// handleExpired removes the persisted copy of a session whose token expired
// while the client was running.
func (a *authService) handleExpired(session models.Session) {
	ctx := context.Background()
	a.logger.Info(ctx, "session expired, signing out", "username", session.Username)
	a.deletePersisted(ctx)
}

func (a *authService) deletePersisted(ctx context.Context) {
	if err := a.storage.Delete(ctx); err != nil {
		a.logger.Warn(ctx, "failed to delete persisted session", "error", err)
	}
}
