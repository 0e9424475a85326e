package client

import (
	"context"

	"github.com/dmitrijs2005/promptmaster/internal/client/models"
)

// Client is the Prompt Master REST API contract.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Session, error)
	Register(ctx context.Context, reg models.Registration) (*models.Session, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.Session, error)

	Models(ctx context.Context) ([]models.Model, error)

	Templates(ctx context.Context) ([]models.Template, error)
	Template(ctx context.Context, id int64) (*models.Template, error)
	CreateTemplate(ctx context.Context, in models.TemplateInput) (*models.Template, error)
	UpdateTemplate(ctx context.Context, id int64, in models.TemplateInput) (*models.Template, error)
	DeleteTemplate(ctx context.Context, id int64) error

	History(ctx context.Context) ([]models.HistoryEntry, error)
	Optimize(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResult, error)

	Ping(ctx context.Context) error
}

// TokenSource returns the bearer token of the live session, or "".
type TokenSource interface {
	Token() string
}
