package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"fedisync/pkg/banner"
	"fedisync/pkg/config"
	"fedisync/pkg/engine"
	"fedisync/pkg/logger"
	"fedisync/pkg/remote"
	"fedisync/pkg/store"
)

// App encapsulates the engine components and lifecycle.
type App struct {
	cfg     *config.Config
	addr    string
	dbPath  string
	sources string
	version string

	eng *engine.Engine
	srv *http.Server
}

// New validates the effective config, opens the store and builds the
// engine. It does not start the status server; call Run to start it and
// block until shutdown.
func New(cfg *config.Config, addr, dbPath, sources, version string, client remote.Client) (*App, error) {
	_ = godotenv.Load(".env")

	if err := validateConfig(cfg, dbPath); err != nil {
		return nil, err
	}
	if err := store.Open(dbPath); err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", dbPath, err)
	}

	eng := engine.New(engine.Options{
		Remote:          client,
		Creds:           credentialSource(cfg.Accounts),
		RPS:             cfg.Remote.RPS,
		Burst:           cfg.Remote.Burst,
		PageSize:        cfg.Remote.PageSize,
		MaxCommentDepth: cfg.Remote.MaxCommentDepth,
		SiteTTL:         time.Duration(cfg.Remote.SiteTTLSeconds) * time.Second,
		QueueCapacity:   cfg.Queue.Capacity,
	})

	return &App{
		cfg:     cfg,
		addr:    addr,
		dbPath:  dbPath,
		sources: sources,
		version: version,
		eng:     eng,
	}, nil
}

// Engine exposes the sync engine to embedding callers.
func (a *App) Engine() *engine.Engine { return a.eng }

// Run starts the status HTTP server and blocks until ctx is canceled or
// a fatal server error occurs.
func (a *App) Run(ctx context.Context) error {
	banner.Print(a.addr, a.dbPath, a.sources, a.version)

	errCh := a.startHTTP()

	select {
	case <-ctx.Done():
		a.stop()
		return nil
	case err := <-errCh:
		a.stop()
		return err
	}
}

func (a *App) stop() {
	if a.srv != nil {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shutCtx)
	}
	a.eng.Close()
	if err := store.Close(); err != nil {
		logger.Log.Error("store_close_failed", zap.Error(err))
	}
}
