package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(c client.Client, storage SessionStorage) (AuthService, *stores.AuthStore) {
	store := stores.NewAuthStore()
	return NewAuthService(c, store, storage, logging.NewNopLogger()), store
}

func TestRestore_LiveSession(t *testing.T) {
	sess := liveSession(t, "alice")
	storage := &memSessionStorage{session: &sess}
	svc, store := newAuth(&fakeClient{}, storage)

	state, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stores.Authenticated{Session: sess}, state)
	assert.True(t, store.IsHydrated())
	assert.Equal(t, 0, storage.deleted)
}

func TestRestore_ExpiredSessionIsDeleted(t *testing.T) {
	sess := expiredSession(t, "alice")
	storage := &memSessionStorage{session: &sess}
	svc, store := newAuth(&fakeClient{}, storage)

	state, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stores.Anonymous{}, state)
	assert.Equal(t, 1, storage.deleted)
	assert.Equal(t, "", store.Token())
}

func TestRestore_UnreadableSessionDegradesToAnonymous(t *testing.T) {
	storage := &memSessionStorage{loadErr: common.ErrDecryption}
	svc, store := newAuth(&fakeClient{}, storage)

	state, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stores.Anonymous{}, state)
	assert.True(t, store.IsHydrated())
	assert.Equal(t, 1, storage.deleted)
}

func TestRestore_RunsOnce(t *testing.T) {
	storage := &memSessionStorage{}
	svc, _ := newAuth(&fakeClient{}, storage)

	_, err := svc.Restore(context.Background())
	require.NoError(t, err)

	sess := liveSession(t, "late")
	storage.session = &sess
	state, err := svc.Restore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stores.Anonymous{}, state)
}

func TestLogin_PersistsAndAuthenticates(t *testing.T) {
	sess := liveSession(t, "bob")
	fc := &fakeClient{LoginRet: &sess}
	storage := &memSessionStorage{}
	svc, store := newAuth(fc, storage)

	got, err := svc.Login(context.Background(), models.Credentials{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, sess.AccessToken, store.Token())
	require.NotNil(t, storage.session)
	assert.Equal(t, sess, *storage.session)
}

func TestLogin_ServerErrorLeavesStateAlone(t *testing.T) {
	fc := &fakeClient{LoginErr: &client.APIError{Status: 400, Detail: "bad credentials"}}
	storage := &memSessionStorage{}
	svc, store := newAuth(fc, storage)
	store.Hydrate(nil)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "bob"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad credentials")
	assert.Equal(t, stores.Anonymous{}, store.State())
	assert.Nil(t, storage.session)
}

func TestLogin_UnusableTokenIsRejected(t *testing.T) {
	fc := &fakeClient{LoginRet: &models.Session{Username: "bob", AccessToken: "garbage"}}
	storage := &memSessionStorage{}
	svc, store := newAuth(fc, storage)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "bob"})
	require.ErrorIs(t, err, common.ErrInvalidToken)
	assert.Equal(t, stores.Anonymous{}, store.State())
	assert.Nil(t, storage.session)
}

func TestLogin_PersistFailureKeepsSession(t *testing.T) {
	sess := liveSession(t, "bob")
	storage := &memSessionStorage{saveErr: errServer}
	svc, store := newAuth(&fakeClient{LoginRet: &sess}, storage)

	_, err := svc.Login(context.Background(), models.Credentials{Username: "bob"})
	require.NoError(t, err)
	assert.NotEmpty(t, store.Token())
}

func TestRegister_PersistsAndAuthenticates(t *testing.T) {
	sess := liveSession(t, "carol")
	storage := &memSessionStorage{}
	svc, store := newAuth(&fakeClient{RegisterRet: &sess}, storage)

	_, err := svc.Register(context.Background(), models.Registration{Username: "carol", Password: "pw", Email: "c@x.io"})
	require.NoError(t, err)
	assert.IsType(t, stores.Authenticated{}, store.State())
	assert.NotNil(t, storage.session)
}

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	sess := liveSession(t, "bob")
	fc := &fakeClient{LogoutErr: errServer}
	storage := &memSessionStorage{session: &sess}
	svc, store := newAuth(fc, storage)
	store.Hydrate(&sess)

	err := svc.Logout(context.Background())
	require.ErrorIs(t, err, errServer)
	assert.Equal(t, stores.Anonymous{}, store.State())
	assert.Nil(t, storage.session)
	assert.Equal(t, 1, fc.Count("Logout"))
}

func TestLogout_WithoutSessionSkipsServer(t *testing.T) {
	fc := &fakeClient{}
	svc, store := newAuth(fc, &memSessionStorage{})
	store.Hydrate(nil)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 0, fc.Count("Logout"))
}

func TestLogout_UnauthorizedIsNotAnError(t *testing.T) {
	sess := liveSession(t, "bob")
	fc := &fakeClient{LogoutErr: client.ErrUnauthorized}
	svc, store := newAuth(fc, &memSessionStorage{})
	store.Hydrate(&sess)

	require.NoError(t, svc.Logout(context.Background()))
}

func TestMe_RefreshesUserFieldsAndKeepsToken(t *testing.T) {
	sess := liveSession(t, "bob")
	fc := &fakeClient{MeRet: &models.Session{UserID: 1, Username: "bobby", Email: "new@x.io"}}
	storage := &memSessionStorage{}
	svc, store := newAuth(fc, storage)
	store.Hydrate(&sess)

	got, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bobby", got.Username)
	assert.Equal(t, sess.AccessToken, got.AccessToken)
	assert.Equal(t, sess.AccessToken, store.Token())
	require.NotNil(t, storage.session)
	assert.Equal(t, "new@x.io", storage.session.Email)
}

func TestMe_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	svc, store := newAuth(fc, &memSessionStorage{})

	_, err := svc.Me(context.Background())
	require.ErrorIs(t, err, common.ErrNotHydrated)

	store.Hydrate(nil)
	_, err = svc.Me(context.Background())
	require.ErrorIs(t, err, common.ErrNoSession)
	assert.Empty(t, fc.Calls())
}

func TestHandleUnauthorized_ResetsAndDeletes(t *testing.T) {
	sess := liveSession(t, "bob")
	storage := &memSessionStorage{session: &sess}
	svc, store := newAuth(&fakeClient{}, storage)
	store.Hydrate(&sess)

	svc.HandleUnauthorized(context.Background())
	assert.Equal(t, stores.Anonymous{}, store.State())
	assert.Nil(t, storage.session)
}

func TestPing(t *testing.T) {
	fc := &fakeClient{PingErr: client.ErrUnavailable}
	svc, _ := newAuth(fc, &memSessionStorage{})
	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}

func TestEncryptedSessionStorage_RoundTripAndCorruption(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	storage := NewEncryptedSessionStorage(store.Sessions, newCipher(store, SessionNamespace))

	got, err := storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	sess := liveSession(t, "dave")
	require.NoError(t, storage.Save(ctx, sess))

	raw, err := store.Sessions.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, raw, "dave", "session must be stored encrypted")

	got, err = storage.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sess.Username, got.Username)
	assert.Equal(t, sess.AccessToken, got.AccessToken)

	require.NoError(t, store.Sessions.Save(ctx, "bm90IGEgYmxvYg=="))
	_, err = storage.Load(ctx)
	require.ErrorIs(t, err, common.ErrDecryption)

	require.NoError(t, storage.Delete(ctx))
	got, err = storage.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRestore_EndToEndWithEncryptedStorage(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	sess := liveSession(t, "erin")

	first, _ := newAuth(&fakeClient{LoginRet: &sess}, NewEncryptedSessionStorage(store.Sessions, newCipher(store, SessionNamespace)))
	_, err := first.Login(ctx, models.Credentials{Username: "erin", Password: "pw"})
	require.NoError(t, err)

	second, authStore := newAuth(&fakeClient{}, NewEncryptedSessionStorage(store.Sessions, newCipher(store, SessionNamespace)))
	state, err := second.Restore(ctx)
	require.NoError(t, err)
	require.IsType(t, stores.Authenticated{}, state)
	assert.Equal(t, sess.AccessToken, authStore.Token())
}

func TestExpiredSessionIsSignedOutAndDeleted(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	storage := NewEncryptedSessionStorage(store.Sessions, newCipher(store, SessionNamespace))

	now := time.Now()
	authStore := stores.NewAuthStore(stores.WithClock(func() time.Time { return now }))
	sess := liveSession(t, "frank")
	svc := NewAuthService(&fakeClient{LoginRet: &sess}, authStore, storage, logging.NewNopLogger())

	_, err := svc.Login(ctx, models.Credentials{Username: "frank", Password: "pw"})
	require.NoError(t, err)
	raw, err := store.Sessions.Load(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	now = now.Add(2 * time.Hour)

	_, ok := authStore.Session()
	assert.False(t, ok)
	assert.IsType(t, stores.Anonymous{}, authStore.State())

	raw, err = store.Sessions.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, raw, "persisted session removed on expiry")

	_, err = svc.Me(ctx)
	require.ErrorIs(t, err, common.ErrNoSession)
}
