package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"recursoweb/framework"
	"recursoweb/internal/config"
	"recursoweb/internal/metrics"
	"recursoweb/internal/recurso"
	"recursoweb/internal/web"
	"recursoweb/internal/web/appcore"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *globalOptions) *cobra.Command {
	var (
		listenAddr string
		backend    string
		staticDir  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recurso pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.ListenAddr = listenAddr
			}
			if cmd.Flags().Changed("backend") {
				cfg.Backend = config.ParseBackend(backend)
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.StaticDir = staticDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return serve(cmd.Context(), cfg, logger, nil)
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (env: RECURSOWEB_LISTEN_ADDR)")
	cmd.Flags().StringVar(&backend, "backend", "", "Backend: rest, graphql or sqlite (env: RECURSOWEB_BACKEND)")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "Static assets directory (env: RECURSOWEB_STATIC_DIR)")

	return cmd
}

// serve runs until ctx is done. ready, when set, receives the bound address.
func serve(ctx context.Context, cfg config.Config, logger *zap.Logger, ready chan<- string) error {
	service, closeService, err := openService(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	defer func() {
		if err := closeService(); err != nil {
			logger.Warn("close backend", zap.Error(err))
		}
	}()

	m := metrics.New()
	appCtx := appcore.NewContext(
		recurso.Instrument(service, string(cfg.Backend), m),
		framework.NewRouter(),
		appcore.WithObserver(m),
		appcore.WithLogger(logger),
		appcore.WithPageSize(cfg.PageSize),
		appcore.WithRootURL(cfg.RootURL),
	)
	handler, err := web.NewHandler(appCtx, web.Options{
		StaticDir: cfg.StaticDir,
		Logger:    logger,
		Metrics:   m.Handler(),
	})
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ListenAddr, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	logger.Info("recursoweb listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("backend", string(cfg.Backend)),
	)
	if ready != nil {
		ready <- listener.Addr().String()
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	logger.Info("recursoweb stopped")
	return nil
}
