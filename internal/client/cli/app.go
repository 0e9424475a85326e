package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/promptmaster/internal/client/client"
	"github.com/dmitrijs2005/promptmaster/internal/client/config"
	"github.com/dmitrijs2005/promptmaster/internal/client/export"
	"github.com/dmitrijs2005/promptmaster/internal/client/models"
	"github.com/dmitrijs2005/promptmaster/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/promptmaster/internal/client/services"
	"github.com/dmitrijs2005/promptmaster/internal/client/stores"
	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/dmitrijs2005/promptmaster/internal/cryptox"
	"github.com/dmitrijs2005/promptmaster/internal/logging"
)

// App owns the local store, the stores and the services of one CLI session.
type App struct {
	config *config.Config
	logger logging.Logger
	store  *client.Store

	authStore *stores.AuthStore
	keyStore  *stores.KeyStore
	templates *stores.Collection[models.Template]
	history   *stores.Collection[models.HistoryEntry]
	models    *stores.Collection[models.Model]

	authService     services.AuthService
	keyService      services.KeyService
	templateService services.TemplateService
	historyService  services.HistoryService
	modelService    services.ModelService
	optimizeService services.OptimizeService

	newS3Exporter func(ctx context.Context, cfg export.S3Config) (services.Exporter, error)

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the data directory and wires the services against the API at
// c.APIURL.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	store, err := client.OpenStore(ctx, c.DataDir)
	if err != nil {
		return nil, err
	}

	api := client.NewHTTPClient(c.APIURL, logger.With("component", "http"), client.WithTimeout(c.RequestTimeout))

	keyStorage := metadata.NewKeyStorage(store.Metadata, common.CryptoKeyMetadataName)
	secretsCipher := cryptox.NewCipher(keyStorage, services.SecretsNamespace, logger)
	sessionCipher := cryptox.NewCipher(keyStorage, services.SessionNamespace, logger)

	a := &App{
		config:    c,
		logger:    logger,
		store:     store,
		authStore: stores.NewAuthStore(),
		keyStore:  stores.NewKeyStore(),
		templates: stores.NewCollection[models.Template](),
		history:   stores.NewCollection[models.HistoryEntry](),
		models:    stores.NewCollection[models.Model](),
		newS3Exporter: func(ctx context.Context, cfg export.S3Config) (services.Exporter, error) {
			exp, err := export.NewS3Exporter(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return exp, nil
		},
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	a.authService = services.NewAuthService(api, a.authStore, services.NewEncryptedSessionStorage(store.Sessions, sessionCipher), logger)
	a.keyService = services.NewKeyService(a.keyStore, store.Secrets, secretsCipher, logger)
	a.templateService = services.NewTemplateService(api, a.authStore, a.templates, logger)
	a.historyService = services.NewHistoryService(api, a.authStore, a.history, logger)
	a.modelService = services.NewModelService(api, a.authStore, a.models)
	a.optimizeService = services.NewOptimizeService(api, a.authStore, a.keyStore, a.historyService, logger)

	api.SetTokenSource(a.authStore)
	api.SetUnauthorizedHook(a.authService.HandleUnauthorized)

	// User-scoped caches must not survive a change of user.
	a.authStore.Subscribe(func(stores.AuthState) {
		a.templates.Invalidate()
		a.history.Invalidate()
	})

	return a, nil
}

// Start restores the persisted session and API key and pings the server.
// Only local store failures are returned.
func (a *App) Start(ctx context.Context) error {
	if _, err := a.authService.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if _, err := a.keyService.Load(ctx); err != nil {
		return fmt.Errorf("load api key: %w", err)
	}
	if err := a.authService.Ping(ctx); err != nil {
		a.logger.Warn(ctx, "server is not reachable", "url", a.config.APIURL, "error", err)
	}
	return nil
}

// Run starts the app and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to Prompt Master CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close releases the local store.
func (a *App) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn(context.Background(), "failed to close store", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authStore.Session()
	return ok
}

// status is shown in the prompt: "(username)" when logged in.
func (a *App) status() string {
	if s, ok := a.authStore.Session(); ok {
		return fmt.Sprintf("(%s) ", s.Username)
	}
	return ""
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
