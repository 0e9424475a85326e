package metadata

import (
	"context"
	"fmt"
)

// KeyStorage keeps cryptox key material in one metadata record. An absent
// record loads as "".
type KeyStorage struct {
	repo Repository
	key  string
}

func NewKeyStorage(repo Repository, key string) *KeyStorage {
	return &KeyStorage{repo: repo, key: key}
}

func (s *KeyStorage) LoadKey(ctx context.Context) (string, error) {
	v, _, err := s.repo.Lookup(ctx, s.key)
	if err != nil {
		return "", fmt.Errorf("load key material: %w", err)
	}
	return v, nil
}

func (s *KeyStorage) SaveKey(ctx context.Context, material string) error {
	if err := s.repo.Put(ctx, s.key, material); err != nil {
		return fmt.Errorf("save key material: %w", err)
	}
	return nil
}

func (s *KeyStorage) DeleteKey(ctx context.Context) error {
	if err := s.repo.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("delete key material: %w", err)
	}
	return nil
}
