package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artpar/actionkit/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 10s
api:
  version: v2
database:
  driver: memory
logging:
  level: debug
  format: console
metrics:
  enabled: true
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("read_timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write_timeout default = %v", cfg.Server.WriteTimeout)
	}
	if cfg.API.Version != "v2" {
		t.Errorf("version = %q", cfg.API.Version)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "{}"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.API.Version != "v1" {
		t.Errorf("version = %q", cfg.API.Version)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.DSN != "actionkit.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_DB_PATH", "/tmp/expanded.db")
	cfg, err := config.Load(writeConfig(t, `
database:
  dsn: ${TEST_DB_PATH}
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.DSN != "/tmp/expanded.db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ACTIONKIT_SERVER_PORT", "7070")
	t.Setenv("ACTIONKIT_LOG_LEVEL", "error")
	t.Setenv("ACTIONKIT_METRICS_ENABLED", "yes")

	cfg, err := config.Load(writeConfig(t, `
server:
  port: 9090
logging:
  level: debug
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics.enabled override not applied")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"port out of range", "server:\n  port: 70000\n"},
		{"bad driver", "database:\n  driver: postgres\n"},
		{"bad level", "logging:\n  level: verbose\n"},
		{"bad format", "logging:\n  format: text\n"},
		{"malformed yaml", "server: [not a map\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ACTIONKIT_DATABASE_DRIVER", "memory")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port default = %d", cfg.Server.Port)
	}
}

func TestLoadWithFallback(t *testing.T) {
	t.Run("file exists", func(t *testing.T) {
		cfg, err := config.LoadWithFallback(writeConfig(t, "api:\n  version: from-file\n"))
		if err != nil {
			t.Fatalf("LoadWithFallback: %v", err)
		}
		if cfg.API.Version != "from-file" {
			t.Errorf("version = %q", cfg.API.Version)
		}
	})

	t.Run("file missing falls back to env", func(t *testing.T) {
		t.Setenv("ACTIONKIT_API_VERSION", "from-env")
		cfg, err := config.LoadWithFallback(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("LoadWithFallback: %v", err)
		}
		if cfg.API.Version != "from-env" {
			t.Errorf("version = %q", cfg.API.Version)
		}
	})
}
