package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptmaster/internal/client/repositories/secrets"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/cryptox"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
)

// SecretsNamespace binds the API key cipher key.
const SecretsNamespace = "secrets"

// KeyService persists the key store through the cipher.
type KeyService interface {
	// Load reads and decrypts the stored key into the store. A record that
	// cannot be decrypted wipes the secrets table and yields "".
	Load(ctx context.Context) (string, error)
	// Set encrypts and stores key. An empty key clears.
	Set(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Get() string
}

type keyService struct {
	store  *stores.KeyStore
	repo   secrets.Repository
	cipher *cryptox.Cipher
	logger logging.Logger
}

func NewKeyService(store *stores.KeyStore, repo secrets.Repository, cipher *cryptox.Cipher, logger logging.Logger) KeyService {
	return &keyService{store: store, repo: repo, cipher: cipher, logger: logger}
}

func (k *keyService) Load(ctx context.Context) (string, error) {
	blob, err := k.repo.Get(ctx, common.APIKeySecretName)
	if err != nil {
		return "", fmt.Errorf("load api key: %w", err)
	}
	if blob == "" {
		k.store.Clear()
		return "", nil
	}

	key, err := k.cipher.Decrypt(ctx, blob)
	if err != nil {
		if !errors.Is(err, common.ErrDecryption) {
			return "", fmt.Errorf("load api key: %w", err)
		}
		k.logger.Warn(ctx, "stored secrets cannot be decrypted, clearing them", "error", err)
		if clearErr := k.repo.Clear(ctx); clearErr != nil {
			return "", fmt.Errorf("clear unreadable secrets: %w", clearErr)
		}
		k.store.Clear()
		return "", nil
	}

	k.store.Set(key)
	return key, nil
}

func (k *keyService) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return k.Clear(ctx)
	}

	blob, err := k.cipher.Encrypt(ctx, key)
	if err != nil {
		return fmt.Errorf("store api key: %w", err)
	}
	if err := k.repo.Set(ctx, common.APIKeySecretName, blob); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}
	k.store.Set(key)
	return nil
}

func (k *keyService) Clear(ctx context.Context) error {
	if err := k.repo.Delete(ctx, common.APIKeySecretName); err != nil {
		return fmt.Errorf("clear api key: %w", err)
	}
	k.store.Clear()
	return nil
}

func (k *keyService) Get() string {
	return k.store.Get()
}
