package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-snippets/pkg/cms/memstore"
	"github.com/goliatone/go-snippets/pkg/cms/sqlstore"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture into a SQLite resource database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			if cfg.Store.Fixture == "" || cfg.Store.Path == "" {
				return errors.New("seed: --fixture and --db are required")
			}

			doc, err := memstore.ReadDocumentFile(cfg.Store.Fixture)
			if err != nil {
				return err
			}
			store, err := sqlstore.Open(cfg.Store.Path, sqlstore.WithLogger(log.WithName("sqlstore")))
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Seed(cmd.Context(), doc)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d resources into %s\n", n, cfg.Store.Path)
			return err
		},
	}
	cmd.Flags().String("fixture", "", "YAML fixture to load")
	cmd.Flags().String("db", "", "SQLite database path")
	return cmd
}
