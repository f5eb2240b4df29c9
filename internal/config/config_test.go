package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recursoweb.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Backend != BackendREST || cfg.PageSize != 20 || cfg.Timeout != 15*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeConfig(t, `
listen_addr: ":9000"
backend: sqlite
sqlite_path: /tmp/recursos.db
timeout: 3s
page_size: 50
`)
	t.Setenv("RECURSOWEB_PAGE_SIZE", "10")
	t.Setenv("RECURSOWEB_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9000" || cfg.Backend != BackendSQLite || cfg.SQLitePath != "/tmp/recursos.db" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.Timeout)
	}
	if cfg.PageSize != 10 || cfg.LogLevel != "debug" {
		t.Fatalf("env did not override file: %+v", cfg)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	if err != nil {
		t.Fatalf("load empty file: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := Load(writeConfig(t, "listen: \":1\"\n"))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("RECURSOWEB_PAGE_SIZE", "-4")
	t.Setenv("RECURSOWEB_TIMEOUT", "soon")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PageSize != 20 || cfg.Timeout != 15*time.Second {
		t.Fatalf("expected fallbacks, got %+v", cfg)
	}
}

func TestLoadLeavesValidationToCaller(t *testing.T) {
	cfg, err := Load(writeConfig(t, "backend: kafka\npage_size: 0\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != "kafka" {
		t.Fatalf("expected file backend kept, got %q", cfg.Backend)
	}

	cfg.Backend = BackendSQLite
	cfg.PageSize = 5
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected overrides to fix config, got %v", err)
	}
}

func TestLoadNormalizesBackend(t *testing.T) {
	cfg, err := Load(writeConfig(t, "backend: \" GraphQL \"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendGraphQL {
		t.Fatalf("expected graphql backend, got %q", cfg.Backend)
	}

	t.Setenv("RECURSOWEB_BACKEND", "SQLite")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite {
		t.Fatalf("expected sqlite backend from env, got %q", cfg.Backend)
	}
}

func TestParseBackend(t *testing.T) {
	for input, want := range map[string]Backend{
		"rest":      BackendREST,
		" SQLITE ":  BackendSQLite,
		"GraphQL":   BackendGraphQL,
		"\tkafka\n": "kafka",
	} {
		if got := ParseBackend(input); got != want {
			t.Errorf("ParseBackend(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Backend = "kafka"
	cfg.PageSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), `unknown backend "kafka"`) || !strings.Contains(err.Error(), "page size") {
		t.Fatalf("expected both problems reported, got %v", err)
	}

	cfg = Default()
	cfg.Backend = BackendGraphQL
	cfg.GraphQLEndpoint = " "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing graphql endpoint error")
	}
}
