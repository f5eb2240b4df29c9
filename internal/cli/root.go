package cli

import (
	"os"

	"github.com/spf13/cobra"
)

type globalOptions struct {
	configPath string
	logLevel   string
}

func NewRootCmd(version string) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "recursoweb",
		Short:        "Server-rendered pages for recurso entities",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("RECURSOWEB_CONFIG"), "YAML config file (env: RECURSOWEB_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (env: RECURSOWEB_LOG_LEVEL)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newVersionCmd(version))

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if version == "" {
				version = "dev"
			}
			_, err := cmd.OutOrStdout().Write([]byte(version + "\n"))
			return err
		},
	}
}
