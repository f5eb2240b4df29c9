package cli

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"recursoweb/internal/config"
	"recursoweb/internal/gql"
	"recursoweb/internal/logging"
	"recursoweb/internal/recurso"
)

func loadConfig(opts *globalOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if level := strings.TrimSpace(opts.logLevel); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogDevelopment)
}

// openService builds the configured backend. The returned close func is
// never nil.
func openService(ctx context.Context, cfg config.Config) (recurso.Service, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendREST:
		return recurso.NewRESTService(cfg.APIBaseURL, cfg.AuthToken, cfg.Timeout), noop, nil
	case config.BackendGraphQL:
		client := gql.NewClient(cfg.GraphQLEndpoint, cfg.AuthToken, cfg.Timeout)
		return recurso.NewGraphQLService(client), noop, nil
	case config.BackendSQLite:
		store, err := recurso.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
