package services

import (
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
)

// requireHydrated fails until the persisted session has been restored.
func requireHydrated(auth *stores.AuthStore) error {
	if !auth.IsHydrated() {
		return common.ErrNotHydrated
	}
	return nil
}

// requireSession fails unless a live session exists. A session that expired
// since the last check is dropped here.
func requireSession(auth *stores.AuthStore) error {
	if err := requireHydrated(auth); err != nil {
		return err
	}
	if auth.Token() == "" {
		return common.ErrNoSession
	}
	return nil
}
