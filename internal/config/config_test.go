package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "NOVEL_SHELL_RESOURCE_DIR", "LOG_LEVEL", "ENABLE_REQUEST_LOGGING", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "novel-shell.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.ResourceDir != "" {
		t.Fatalf("expected resource dir to be resolved later, got %q", cfg.ResourceDir)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Fatalf("expected default log level, got %s", cfg.LogLevel)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
	if !cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to be enabled by default")
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("unexpected rate limit defaults: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("NOVEL_SHELL_RESOURCE_DIR", "/opt/novel/resources")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENABLE_REQUEST_LOGGING", "false")
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg, err := Load(&CLIOverrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.ResourceDir != "/opt/novel/resources" {
		t.Fatalf("unexpected resource dir %q", cfg.ResourceDir)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to be disabled")
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 7 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadEnvironmentRejectsMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_BURST", "many")

	if _, err := Load(nil); err == nil {
		t.Fatalf("expected error for malformed RATE_LIMIT_BURST")
	}
}

func TestLoadYAMLOverridesEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	path := writeConfigFile(t, `
port: "7000"
resource_dir: ./resources
shutdown_grace_period: 3s
idle_timeout: 2m
enable_request_logging: false
rate_limit:
  rps: 0
  burst: 0
`)

	cfg, err := Load(&CLIOverrides{ConfigFile: path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7000" {
		t.Fatalf("expected YAML port to win over env, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env log level to survive, got %s", cfg.LogLevel)
	}
	if cfg.ResourceDir != "./resources" {
		t.Fatalf("unexpected resource dir %q", cfg.ResourceDir)
	}
	if cfg.ShutdownGracePeriod != 3*time.Second || cfg.IdleTimeout != 2*time.Minute {
		t.Fatalf("unexpected durations: %s / %s", cfg.ShutdownGracePeriod, cfg.IdleTimeout)
	}
	if cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("expected default write timeout, got %s", cfg.WriteTimeout)
	}
	if cfg.EnableRequestLogging {
		t.Fatalf("expected request logging to be disabled")
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 0 {
		t.Fatalf("expected rate limiting to be disabled, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadCLIOverridesEverything(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	path := writeConfigFile(t, "port: \"7000\"\nresource_dir: /from/yaml\n")

	port := "6000"
	dir := "/from/flag"
	level := "error"
	rps := 2.5
	burst := 3
	cfg, err := Load(&CLIOverrides{
		ConfigFile:     path,
		Port:           &port,
		ResourceDir:    &dir,
		LogLevel:       &level,
		RateLimitRPS:   &rps,
		RateLimitBurst: &burst,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "6000" || cfg.ResourceDir != "/from/flag" || cfg.LogLevel != "error" {
		t.Fatalf("expected CLI values, got %+v", cfg)
	}
	if cfg.RateLimitRPS != 2.5 || cfg.RateLimitBurst != 3 {
		t.Fatalf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "absent.yml")}); err == nil {
			t.Fatalf("expected error for missing config file")
		}
	})

	t.Run("malformed YAML", func(t *testing.T) {
		path := writeConfigFile(t, "port: [\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for malformed YAML")
		}
	})

	t.Run("invalid duration", func(t *testing.T) {
		path := writeConfigFile(t, "write_timeout: soon\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for invalid duration")
		}
	})

	t.Run("negative rate limit", func(t *testing.T) {
		path := writeConfigFile(t, "rate_limit:\n  rps: -1\n")
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected validation error for negative rps")
		}
	})
}
