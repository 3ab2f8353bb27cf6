package cli

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/aymenbt/sportera/internal/client/api"
	"github.com/aymenbt/sportera/internal/client/config"
	"github.com/aymenbt/sportera/internal/client/services"
	"github.com/aymenbt/sportera/internal/client/session"
	"github.com/aymenbt/sportera/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the Sportera CLI together: configuration, the local session
// store, the HTTP client and the auth flows. The current session is held in
// memory for the prompt; the store remains the durable copy.
type App struct {
	config  *config.Config
	auth    *services.AuthService
	store   *session.Store
	log     logging.Logger
	reader  *bufio.Reader
	session *services.Session
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := session.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "failed to initialize session database", "dsn", c.DatabaseDSN, "error", err)
		return nil, err
	}

	// The store doubles as the token source for the transport chain.
	apiClient, err := api.New(c.ServerBaseURL, store, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	auth := services.NewAuthService(apiClient, store, log)

	return &App{
		config: c,
		auth:   auth,
		store:  store,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores a remembered session if one exists and hands control to the
// command loop. It returns when the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.store.Close() }()

	sess, err := a.auth.RestoreSession(ctx)
	switch {
	case err == nil:
		a.session = sess
	case !errors.Is(err, services.ErrNoSession):
		a.log.Warn(ctx, "failed to restore session", "error", err)
	}

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.Token != ""
}
