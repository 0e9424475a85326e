package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
)

// AllCategories selects every template in Filter.
const AllCategories = "all"

type TemplateService interface {
	// List returns the cached templates, fetching when empty or forced.
	List(ctx context.Context, force bool) ([]models.Template, error)
	Get(ctx context.Context, id int64) (*models.Template, error)
	Create(ctx context.Context, in models.TemplateInput) (*models.Template, error)
	Update(ctx context.Context, id int64, in models.TemplateInput) (*models.Template, error)
	Delete(ctx context.Context, id int64) error
	// Categories returns "all" followed by distinct categories in list order.
	Categories() []string
	// Filter narrows the cached list by category and a case-insensitive
	// query over name, description and content.
	Filter(category, query string) []models.Template
}

type templateService struct {
	client     client.Client
	auth       *stores.AuthStore
	collection *stores.Collection[models.Template]
	logger     logging.Logger
}

func NewTemplateService(c client.Client, auth *stores.AuthStore, collection *stores.Collection[models.Template], logger logging.Logger) TemplateService {
	return &templateService{client: c, auth: auth, collection: collection, logger: logger}
}

func (s *templateService) List(ctx context.Context, force bool) ([]models.Template, error) {
	if err := requireSession(s.auth); err != nil {
		return nil, err
	}
	if force || !s.collection.Loaded() {
		if err := s.collection.Fetch(ctx, s.client.Templates); err != nil {
			return nil, fmt.Errorf("fetch templates: %w", err)
		}
	}
	return s.collection.Items(), nil
}

// Get serves from the cache and falls back to the server.
func (s *templateService) Get(ctx context.Context, id int64) (*models.Template, error) {
	if err := requireSession(s.auth); err != nil {
		return nil, err
	}
	if t, ok := s.collection.Find(byID(id)); ok {
		return &t, nil
	}

	t, err := s.client.Template(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return nil, fmt.Errorf("template %d: %w", id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("fetch template %d: %w", id, err)
	}
	return t, nil
}

func (s *templateService) Create(ctx context.Context, in models.TemplateInput) (*models.Template, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := requireSession(s.auth); err != nil {
		return nil, err
	}

	t, err := s.client.CreateTemplate(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	if s.collection.Loaded() {
		s.collection.Push(*t)
	}
	s.logger.Info(ctx, "template created", "id", t.ID, "category", t.Category)
	return t, nil
}

func (s *templateService) Update(ctx context.Context, id int64, in models.TemplateInput) (*models.Template, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsDefault {
		return nil, common.ErrImmutableTemplate
	}

	t, err := s.client.UpdateTemplate(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update template %d: %w", id, err)
	}
	if i := s.collection.IndexOf(byID(id)); i >= 0 {
		if err := s.collection.Replace(*t, i); err != nil {
			return nil, err
		}
	}
	s.logger.Info(ctx, "template updated", "id", id)
	return t, nil
}

func (s *templateService) Delete(ctx context.Context, id int64) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.IsDefault {
		return common.ErrImmutableTemplate
	}

	if err := s.client.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("delete template %d: %w", id, err)
	}
	if i := s.collection.IndexOf(byID(id)); i >= 0 {
		if err := s.collection.Delete(i); err != nil {
			return err
		}
	}
	s.logger.Info(ctx, "template deleted", "id", id)
	return nil
}

func (s *templateService) Categories() []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, t := range s.collection.Items() {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

func (s *templateService) Filter(category, query string) []models.Template {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)

	var out []models.Template
	for _, t := range s.collection.Items() {
		if category != "" && !strings.EqualFold(category, AllCategories) && !strings.EqualFold(t.Category, category) {
			continue
		}
		if query != "" && !containsFold(query, t.Name, t.DescriptionText(), t.Content) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func byID(id int64) func(models.Template) bool {
	return func(t models.Template) bool { return t.ID == id }
}

// containsFold reports whether any field contains the lower-cased query.
func containsFold(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
