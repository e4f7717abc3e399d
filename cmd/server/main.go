package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/novel-shell/internal/application"
	"github.com/eugenenazirov/novel-shell/internal/config"
	"github.com/eugenenazirov/novel-shell/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("novel-shell", "Novel Shell - serves the scene configuration snapshot to the front end")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	resourceDir := kingpinApp.Flag("resource-dir", "Directory containing config/*.yml (resolved automatically when empty)").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	serveCmd := kingpinApp.Command("serve", "Load the configuration and serve it over HTTP").Default()
	checkCmd := kingpinApp.Command("check", "Load the configuration documents and report what was found")

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *resourceDir != "" {
		overrides.ResourceDir = resourceDir
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case checkCmd.FullCommand():
		if err := check(cfg, logger, os.Stdout); err != nil {
			logger.Fatal("configuration check failed", zap.Error(err))
		}
	case serveCmd.FullCommand():
		serve(cfg, logger)
	}
}

func serve(cfg config.Config, logger *zap.Logger) {
	logger.Info("app setup starting")

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
	logger.Info("app setup finished", zap.String("addr", app.Addr()))

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// check loads the documents without starting the server and prints a summary.
func check(cfg config.Config, logger *zap.Logger, out io.Writer) error {
	dir, appCfg, err := application.LoadResources(cfg.ResourceDir, logger)
	if err != nil {
		return err
	}

	summary := appCfg.Summary()
	_, err = fmt.Fprintf(out, "resource directory: %s\ncharacters: %d\nbackgrounds: %d\nfonts: %d\ntext configs: %d\n",
		dir, summary.Characters, summary.Backgrounds, summary.Fonts, summary.TextConfigs)
	return err
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
