package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/auth"
	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/cryptox"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client and records every call by name.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	LoginRet    *models.Session
	LoginErr    error
	RegisterRet *models.Session
	RegisterErr error
	LogoutErr   error
	MeRet       *models.Session
	MeErr       error

	ModelsRet []models.Model
	ModelsErr error

	TemplatesRet []models.Template
	TemplatesErr error
	TemplateRet  *models.Template
	TemplateErr  error
	CreateRet    *models.Template
	CreateErr    error
	UpdateRet    *models.Template
	UpdateErr    error
	DeleteErr    error

	HistoryRet []models.HistoryEntry
	HistoryErr error

	OptimizeRet *models.OptimizeResult
	OptimizeErr error

	LastOptimize models.OptimizeRequest

	PingErr error
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Count(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) Login(context.Context, models.Credentials) (*models.Session, error) {
	f.record("Login")
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(context.Context, models.Registration) (*models.Session, error) {
	f.record("Register")
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.record("Logout")
	return f.LogoutErr
}

func (f *fakeClient) Me(context.Context) (*models.Session, error) {
	f.record("Me")
	return f.MeRet, f.MeErr
}

func (f *fakeClient) Models(context.Context) ([]models.Model, error) {
	f.record("Models")
	return f.ModelsRet, f.ModelsErr
}

func (f *fakeClient) Templates(context.Context) ([]models.Template, error) {
	f.record("Templates")
	return f.TemplatesRet, f.TemplatesErr
}

func (f *fakeClient) Template(context.Context, int64) (*models.Template, error) {
	f.record("Template")
	return f.TemplateRet, f.TemplateErr
}

func (f *fakeClient) CreateTemplate(context.Context, models.TemplateInput) (*models.Template, error) {
	f.record("CreateTemplate")
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) UpdateTemplate(context.Context, int64, models.TemplateInput) (*models.Template, error) {
	f.record("UpdateTemplate")
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteTemplate(context.Context, int64) error {
	f.record("DeleteTemplate")
	return f.DeleteErr
}

func (f *fakeClient) History(context.Context) ([]models.HistoryEntry, error) {
	f.record("History")
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeClient) Optimize(_ context.Context, req models.OptimizeRequest) (*models.OptimizeResult, error) {
	f.record("Optimize")
	f.LastOptimize = req
	return f.OptimizeRet, f.OptimizeErr
}

func (f *fakeClient) Ping(context.Context) error {
	f.record("Ping")
	return f.PingErr
}

var _ client.Client = (*fakeClient)(nil)

// ---- helpers ----

var testSecret = []byte("test-secret")

func liveSession(t *testing.T, username string) models.Session {
	t.Helper()
	token, err := auth.GenerateToken(1, username, testSecret, time.Hour)
	require.NoError(t, err)
	return models.Session{UserID: 1, Username: username, Email: username + "@example.com", AccessToken: token}
}

func expiredSession(t *testing.T, username string) models.Session {
	t.Helper()
	token, err := auth.GenerateToken(1, username, testSecret, -time.Minute)
	require.NoError(t, err)
	return models.Session{UserID: 1, Username: username, AccessToken: token}
}

// openStore returns a migrated store in a temp data dir.
func openStore(t *testing.T) *client.Store {
	t.Helper()
	store, err := client.OpenStore(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newCipher(store *client.Store, namespace string) *cryptox.Cipher {
	ks := metadata.NewKeyStorage(store.Metadata, common.CryptoKeyMetadataName)
	return cryptox.NewCipher(ks, namespace, logging.NewNopLogger())
}

// authenticatedStore returns a hydrated auth store holding a live session.
func authenticatedStore(t *testing.T) *stores.AuthStore {
	t.Helper()
	s := stores.NewAuthStore()
	sess := liveSession(t, "alice")
	s.Hydrate(&sess)
	return s
}

func anonymousStore() *stores.AuthStore {
	s := stores.NewAuthStore()
	s.Hydrate(nil)
	return s
}

// memSessionStorage is an in-memory SessionStorage.
type memSessionStorage struct {
	session *models.Session
	loadErr error
	saveErr error
	deleted int
}

func (m *memSessionStorage) Load(context.Context) (*models.Session, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.session, nil
}

func (m *memSessionStorage) Save(_ context.Context, s models.Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.session = &s
	return nil
}

func (m *memSessionStorage) Delete(context.Context) error {
	m.deleted++
	m.session = nil
	return nil
}

var errServer = errors.New("server exploded")
