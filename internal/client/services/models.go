package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
)

type ModelService interface {
	List(ctx context.Context, force bool) ([]models.Model, error)
}

type modelService struct {
	client     client.Client
	auth       *stores.AuthStore
	collection *stores.Collection[models.Model]
}

func NewModelService(c client.Client, auth *stores.AuthStore, collection *stores.Collection[models.Model]) ModelService {
	return &modelService{client: c, auth: auth, collection: collection}
}

// List does not need a session, but waits for hydration like every
// dependent fetch.
func (s *modelService) List(ctx context.Context, force bool) ([]models.Model, error) {
	if err := requireHydrated(s.auth); err != nil {
		return nil, err
	}
	if force || !s.collection.Loaded() {
		if err := s.collection.Fetch(ctx, s.client.Models); err != nil {
			return nil, fmt.Errorf("fetch models: %w", err)
		}
	}
	return s.collection.Items(), nil
}
