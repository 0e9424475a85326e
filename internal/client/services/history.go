package services

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
)

// HistoryFilter narrows the cached history.
type HistoryFilter struct {
	// Query is matched case-insensitively against both prompts.
	Query string
	// Model keeps only entries produced by this model id.
	Model string
	// Oldest sorts oldest first instead of newest first.
	Oldest bool
}

// Exporter stores an exported document and returns where it went.
type Exporter interface {
	Export(ctx context.Context, name string, data []byte) (string, error)
}

type HistoryService interface {
	List(ctx context.Context, force bool) ([]models.HistoryEntry, error)
	Filter(f HistoryFilter) []models.HistoryEntry
	// Export writes the filtered history as JSON through exp.
	Export(ctx context.Context, exp Exporter, f HistoryFilter) (string, error)
	// Invalidate drops the cache so the next List fetches.
	Invalidate()
}

type historyService struct {
	client     client.Client
	auth       *stores.AuthStore
	collection *stores.Collection[models.HistoryEntry]
	logger     logging.Logger
	now        func() time.Time
}

func NewHistoryService(c client.Client, auth *stores.AuthStore, collection *stores.Collection[models.HistoryEntry], logger logging.Logger) HistoryService {
	return &historyService{client: c, auth: auth, collection: collection, logger: logger, now: time.Now}
}

func (s *historyService) List(ctx context.Context, force bool) ([]models.HistoryEntry, error) {
	if err := requireSession(s.auth); err != nil {
		return nil, err
	}
	if force || !s.collection.Loaded() {
		if err := s.collection.Fetch(ctx, s.client.History); err != nil {
			return nil, fmt.Errorf("fetch history: %w", err)
		}
	}
	return s.collection.Items(), nil
}

func (s *historyService) Filter(f HistoryFilter) []models.HistoryEntry {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	model := strings.TrimSpace(f.Model)

	var out []models.HistoryEntry
	for _, h := range s.collection.Items() {
		if model != "" && h.ModelUsed != model {
			continue
		}
		if query != "" && !containsFold(query, h.OriginalPrompt, h.OptimizedText()) {
			continue
		}
		out = append(out, h)
	}

	slices.SortStableFunc(out, func(a, b models.HistoryEntry) int {
		if f.Oldest {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

type historyExport struct {
	ExportedAt time.Time             `json:"exported_at"`
	Count      int                   `json:"count"`
	Entries    []models.HistoryEntry `json:"entries"`
}

func (s *historyService) Export(ctx context.Context, exp Exporter, f HistoryFilter) (string, error) {
	if _, err := s.List(ctx, false); err != nil {
		return "", err
	}

	entries := s.Filter(f)
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	now := s.now().UTC()
	data, err := json.MarshalIndent(historyExport{ExportedAt: now, Count: len(entries), Entries: entries}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode history: %w", err)
	}

	name := fmt.Sprintf("history-%s.json", now.Format("20060102-150405"))
	location, err := exp.Export(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("export history: %w", err)
	}
	s.logger.Info(ctx, "history exported", "entries", len(entries), "location", location)
	return location, nil
}

func (s *historyService) Invalidate() {
	s.collection.Invalidate()
}
