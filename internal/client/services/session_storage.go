package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/promptmaster/internal/cryptox"
)

// SessionNamespace binds the session cipher key.
const SessionNamespace = "session"

// SessionStorage persists the auth payload between runs.
// Load returns (nil, nil) when nothing usable is stored.
type SessionStorage interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s models.Session) error
	Delete(ctx context.Context) error
}

// encryptedSessionStorage keeps the payload as an encrypted JSON blob.
type encryptedSessionStorage struct {
	repo   sessions.Repository
	cipher *cryptox.Cipher
}

func NewEncryptedSessionStorage(repo sessions.Repository, cipher *cryptox.Cipher) SessionStorage {
	return &encryptedSessionStorage{repo: repo, cipher: cipher}
}

func (s *encryptedSessionStorage) Load(ctx context.Context) (*models.Session, error) {
	blob, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if blob == "" {
		return nil, nil
	}

	var session models.Session
	if err := s.cipher.DecryptJSON(ctx, blob, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *encryptedSessionStorage) Save(ctx context.Context, session models.Session) error {
	blob, err := s.cipher.EncryptJSON(ctx, session)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, blob)
}

func (s *encryptedSessionStorage) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx)
}
