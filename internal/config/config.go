package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Backend string

const (
	BackendREST    Backend = "rest"
	BackendGraphQL Backend = "graphql"
	BackendSQLite  Backend = "sqlite"
)

// ParseBackend trims and lowercases a backend name before it is stored.
// Unknown names are kept and rejected by Validate.
func ParseBackend(value string) Backend {
	return Backend(strings.ToLower(strings.TrimSpace(value)))
}

const envPrefix = "RECURSOWEB_"

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	StaticDir  string `yaml:"static_dir"`

	RootURL string `yaml:"root_url"`

	Backend         Backend       `yaml:"backend"`
	APIBaseURL      string        `yaml:"api_base_url"`
	GraphQLEndpoint string        `yaml:"graphql_endpoint"`
	AuthToken       string        `yaml:"auth_token"`
	SQLitePath      string        `yaml:"sqlite_path"`
	Timeout         time.Duration `yaml:"timeout"`

	PageSize int `yaml:"page_size"`

	LogLevel       string `yaml:"log_level"`
	LogDevelopment bool   `yaml:"log_development"`
}

func Default() Config {
	return Config{
		ListenAddr:      ":8080",
		StaticDir:       "internal/web/static",
		Backend:         BackendREST,
		APIBaseURL:      "http://localhost:8081",
		GraphQLEndpoint: "http://localhost:8081/graphql",
		SQLitePath:      "recursoweb.db",
		Timeout:         15 * time.Second,
		PageSize:        20,
		LogLevel:        "info",
	}
}

// Load layers defaults, the optional YAML file at path, then RECURSOWEB_*
// environment variables. The result is not validated: callers apply their
// own overrides first and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config file: %w", err)
		}
		defer file.Close()

		if err := decodeYAML(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	return applyEnv(cfg), nil
}

func decodeYAML(r io.Reader, cfg *Config) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	return decoder.Decode(cfg)
}

func applyEnv(cfg Config) Config {
	cfg.ListenAddr = getEnv(envPrefix+"LISTEN_ADDR", cfg.ListenAddr)
	cfg.StaticDir = getEnv(envPrefix+"STATIC_DIR", cfg.StaticDir)
	cfg.RootURL = getEnv(envPrefix+"ROOT_URL", cfg.RootURL)
	cfg.Backend = ParseBackend(getEnv(envPrefix+"BACKEND", string(cfg.Backend)))
	cfg.APIBaseURL = getEnv(envPrefix+"API_BASE_URL", cfg.APIBaseURL)
	cfg.GraphQLEndpoint = getEnv(envPrefix+"GRAPHQL_ENDPOINT", cfg.GraphQLEndpoint)
	cfg.AuthToken = getEnv(envPrefix+"AUTH_TOKEN", cfg.AuthToken)
	cfg.SQLitePath = getEnv(envPrefix+"SQLITE_PATH", cfg.SQLitePath)
	cfg.Timeout = getEnvDuration(envPrefix+"TIMEOUT", cfg.Timeout)
	cfg.PageSize = getEnvInt(envPrefix+"PAGE_SIZE", cfg.PageSize)
	cfg.LogLevel = getEnv(envPrefix+"LOG_LEVEL", cfg.LogLevel)
	return cfg
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	switch c.Backend {
	case BackendREST:
		if strings.TrimSpace(c.APIBaseURL) == "" {
			errs = append(errs, errors.New("api base url is required for the rest backend"))
		}
	case BackendGraphQL:
		if strings.TrimSpace(c.GraphQLEndpoint) == "" {
			errs = append(errs, errors.New("graphql endpoint is required for the graphql backend"))
		}
	case BackendSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			errs = append(errs, errors.New("sqlite path is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	if c.PageSize < 1 {
		errs = append(errs, fmt.Errorf("page size must be positive, got %d", c.PageSize))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}

	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return fallback
	}

	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
