package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	pkgconfig "github.com/starford/noteful/pkg/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.App.HTTP.Address() != ":8000" {
		t.Errorf("address = %q", cfg.App.HTTP.Address())
	}
	if cfg.App.Production() {
		t.Error("default env should not be production")
	}
}

func TestApplicationConfig_EmptyEnvDefaultsDevelopment(t *testing.T) {
	cfg := ApplicationConfig{HTTP: HTTPConfig{Port: 80}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty env should default: %v", err)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("env = %q, want %q", cfg.Env, EnvDevelopment)
	}
}

func TestApplicationConfig_InvalidEnv(t *testing.T) {
	cfg := ApplicationConfig{Env: "staging", HTTP: HTTPConfig{Port: 80}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown env should fail validation")
	}
}

func TestApplicationConfig_Production(t *testing.T) {
	cfg := ApplicationConfig{Env: EnvProduction}
	if !cfg.Production() {
		t.Error("production env should report Production()")
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
}

func TestFullConfig_DatabaseRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Database.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch empty database url")
	}
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	t.Setenv("TEST_DB_URL", "postgres://localhost/noteful")
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "app:\n  env: production\n  log_level: debug\n  http:\n    port: 9090\ndatabase:\n  url: ${TEST_DB_URL}\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.HTTP.Port != 9090 || !cfg.App.Production() {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.App.LogLevel != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.App.LogLevel)
	}
	if cfg.Database.URL != "postgres://localhost/noteful" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	if cfg.Static.Dir != "./public" {
		t.Errorf("static dir default lost: %q", cfg.Static.Dir)
	}
}
