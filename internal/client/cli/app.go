package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/client/config"
	"github.com/dmitrijs2005/marketfeed/internal/client/federated"
	"github.com/dmitrijs2005/marketfeed/internal/client/feed"
	"github.com/dmitrijs2005/marketfeed/internal/client/repositories/users"
	"github.com/dmitrijs2005/marketfeed/internal/client/services"
	"github.com/dmitrijs2005/marketfeed/internal/client/session"
	"github.com/dmitrijs2005/marketfeed/internal/client/storage"
	"github.com/dmitrijs2005/marketfeed/internal/filex"
	"github.com/dmitrijs2005/marketfeed/internal/logging"
)

type App struct {
	config            *config.Config
	authService       services.AuthService
	profileService    services.ProfileService
	postService       services.PostService
	engagementService services.EngagementService
	session           *session.Manager
	provider          federated.Provider
	widgetReady       atomic.Bool
	closer            io.Closer
	log               logging.Logger
	reader            *bufio.Reader
	out               io.Writer
}

// NewApp opens the local store under c.DataDir, restores a remembered
// session and builds the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}
	c.DataDir = dir

	store, err := storage.OpenSQLite(ctx, c.DBPath())
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DBPath(), "error", err)
		return nil, err
	}

	app := newApp(c, store, log)
	app.closer = store

	if email, ok, err := app.session.Restore(ctx); err != nil {
		log.Warn(ctx, "could not restore session", "error", err)
	} else if ok {
		log.Info(ctx, "session restored", "email", email)
	}
	return app, nil
}

func newApp(c *config.Config, store storage.Store, log logging.Logger) *App {
	repo := users.NewStoreRepository(store, log)
	sess := session.NewManager(store)
	posts := feed.New()
	policy := federated.Policy{Attempts: c.ProviderAttempts, Interval: c.ProviderInterval}
	avatar := services.AvatarOptions{Size: c.AvatarSize, MaxBytes: c.MaxMediaBytes}

	return &App{
		config:            c,
		authService:       services.NewAuthService(repo, sess, policy, log),
		profileService:    services.NewProfileService(repo, sess, avatar, log),
		postService:       services.NewPostService(posts, repo, sess, log),
		engagementService: services.NewEngagementService(posts, sess, log),
		session:           sess,
		provider:          federated.FileProvider{Path: c.TokenPath()},
		log:               log,
		reader:            bufio.NewReader(os.Stdin),
		out:               os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the local store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) setWidgetReady(ctx context.Context, ready bool) {
	if a.widgetReady.Swap(ready) != ready {
		a.log.Info(ctx, "sign-in widget state changed", "ready", ready)
	}
}

// StartProviderWatcher polls the sign-in widget every interval until ctx
// is done, keeping the prompt status current. A non-positive interval
// means federated.DefaultInterval.
func (a *App) StartProviderWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = federated.DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, interval)
			err := a.provider.Ready(pctx)
			cancel()
			a.setWidgetReady(ctx, err == nil)

		case <-ctx.Done():
			return
		}
	}
}
