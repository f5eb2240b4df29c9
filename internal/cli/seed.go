package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"recursoweb/internal/recurso"
)

func newSeedCmd(opts *globalOptions) *cobra.Command {
	var (
		file   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load recursos from a YAML fixtures file into the SQLite store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.SQLitePath = dbPath
			}
			if strings.TrimSpace(cfg.SQLitePath) == "" {
				return errors.New("sqlite path is required")
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open fixtures: %w", err)
			}
			defer func() { _ = f.Close() }()

			items, err := recurso.LoadFixtures(f)
			if err != nil {
				return err
			}

			store, err := recurso.OpenSQLite(cmd.Context(), cfg.SQLitePath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Upsert(cmd.Context(), items); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d recursos into %s\n", len(items), cfg.SQLitePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixtures file with a top-level recursos list")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (env: RECURSOWEB_SQLITE_PATH)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
