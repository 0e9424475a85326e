package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
)

type OptimizeService interface {
	Optimize(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResult, error)
}

type optimizeService struct {
	client  client.Client
	auth    *stores.AuthStore
	keys    *stores.KeyStore
	history HistoryService
	logger  logging.Logger
}

func NewOptimizeService(c client.Client, auth *stores.AuthStore, keys *stores.KeyStore, history HistoryService, logger logging.Logger) OptimizeService {
	return &optimizeService{client: c, auth: auth, keys: keys, history: history, logger: logger}
}

// Optimize fills the API key from the key store when the request has none,
// validates and calls the optimizer. Anonymous runs are allowed; the server
// records history only for signed-in users. A successful run invalidates the
// cached history.
func (s *optimizeService) Optimize(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResult, error) {
	if req.APIKey == "" {
		req.APIKey = s.keys.Get()
	}
	if req.APIKey == "" {
		return nil, common.ErrNoAPIKey
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := requireHydrated(s.auth); err != nil {
		return nil, err
	}

	res, err := s.client.Optimize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	s.history.Invalidate()
	s.logger.Info(ctx, "prompt optimized", "model", req.Model, "template_id", req.TemplateID)
	return res, nil
}
