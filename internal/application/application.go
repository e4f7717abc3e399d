package application

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/eugenenazirov/novel-shell/internal/api"
	"github.com/eugenenazirov/novel-shell/internal/assets"
	"github.com/eugenenazirov/novel-shell/internal/config"
	"github.com/eugenenazirov/novel-shell/internal/metrics"
	"github.com/eugenenazirov/novel-shell/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	resourceDir string
	snapshot    storage.Snapshot
	handler     *api.Handler
	router      http.Handler
	logger      *zap.Logger
	server      *http.Server
	listener    net.Listener
}

// New resolves the resource directory, loads the scene documents, publishes
// the snapshot and wires the HTTP server. Any failure aborts construction;
// there is no partially configured App.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	dir, appCfg, err := LoadResources(cfg.ResourceDir, logger)
	if err != nil {
		return nil, err
	}

	store := storage.NewMemorySnapshot()
	if err := store.Publish(appCfg); err != nil {
		return nil, fmt.Errorf("failed to publish configuration: %w", err)
	}

	handler := api.NewHandler(store)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	rootHandler, err := BuildRootHandler(apiRouter, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP handler: %w", err)
	}

	return &App{
		resourceDir: dir,
		snapshot:    store,
		handler:     handler,
		router:      apiRouter,
		logger:      logger,
		server:      NewServer(cfg, rootHandler),
	}, nil
}

// LoadResources resolves the resource directory and loads the configuration
// snapshot from it.
func LoadResources(resourceDir string, logger *zap.Logger) (string, *assets.AppConfig, error) {
	dir, err := ResolveResourceDir(resourceDir)
	if err != nil {
		return "", nil, err
	}
	logger.Info("resolved resource directory", zap.String("path", dir))

	appCfg, err := assets.Load(dir)
	metrics.RecordConfigLoad(err)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load configuration from %s: %w", dir, err)
	}

	summary := appCfg.Summary()
	metrics.SetConfigEntries(summary)
	logger.Info("config loaded",
		zap.Int("characters", summary.Characters),
		zap.Int("backgrounds", summary.Backgrounds),
		zap.Int("fonts", summary.Fonts),
		zap.Int("text_configs", summary.TextConfigs),
	)

	return dir, appCfg, nil
}

// BuildRootHandler constructs the root HTTP handler that routes API requests,
// exposes metrics and serves the resource directory's assets/ tree.
func BuildRootHandler(apiHandler http.Handler, resourceDir string) (http.Handler, error) {
	if resourceDir == "" {
		return nil, errors.New("resource directory is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	assetsPath := filepath.Join(resourceDir, "assets")
	if info, err := os.Stat(assetsPath); err == nil && info.IsDir() {
		fileServer := http.StripPrefix("/assets/", http.FileServer(http.Dir(assetsPath)))
		mux.Handle("GET /assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
		}))
	} else if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat assets directory: %w", err)
	}

	return mux, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start binds the listening socket and serves requests in a goroutine.
func (a *App) Start() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	a.listener = ln

	go func() {
		a.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("server error", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (a *App) Addr() string {
	if a.listener == nil {
		return a.server.Addr
	}
	return a.listener.Addr().String()
}

// ResourceDir returns the resolved resource directory.
func (a *App) ResourceDir() string {
	return a.resourceDir
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
