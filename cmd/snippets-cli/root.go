package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-snippets/internal/config"
	"github.com/goliatone/go-snippets/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "snippets-cli",
		Short:        "Render CMS output snippets from the command line",
		SilenceUsage: true,
		Long: `snippets-cli runs the CMS output snippets outside a host page:
extract picks a value from a delimited string and map renders a Leaflet
map for resources read from a YAML fixture or a SQLite database.`,
	}

	defaults := config.Defaults()
	flags := root.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("log-level", defaults.Logging.Level, "log level (debug, info, warn, error)")
	flags.String("log-format", defaults.Logging.Format, "log format (console, json)")

	root.AddCommand(newExtractCmd(), newMapCmd(), newSeedCmd(), newConfigCmd())
	return root
}

// Execute is called by main.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime resolves configuration for cmd and builds its logger.
func loadRuntime(cmd *cobra.Command) (config.Config, logr.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, logr.Discard(), err
	}
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return config.Config{}, logr.Discard(), err
	}
	return cfg, log.WithName("snippets"), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			return config.Dump(cmd.OutOrStdout(), path, cmd.Flags())
		},
	}
}
