package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/garyellow/groundwater-bot-go/internal/dataset"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var seedSource string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the groundwater dataset into SQLite",
	Long:  "Creates the records table if needed and upserts every row of a CSV dataset. The source is a local path or r2://key; a .zst suffix is decompressed.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		source := seedSource
		if source == "" {
			source = cfg.DatasetPath
		}
		if source == "" {
			return eris.New("seed: --source is required when GW_DATASET_PATH is unset")
		}

		objects, err := objectStore(ctx)
		if err != nil {
			return err
		}

		db, err := storage.New(ctx, cfg.SQLitePath())
		if err != nil {
			return eris.Wrap(err, "seed: open database")
		}
		defer func() { _ = db.Close() }()

		var store dataset.ObjectStore
		if objects != nil {
			store = objects
		}
		n, err := dataset.NewLoader(store, nil, log.Logger).Seed(ctx, db, source)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d records into %s\n", n, db.Path())
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedSource, "source", "", "dataset path or r2://key (defaults to GW_DATASET_PATH)")
	rootCmd.AddCommand(seedCmd)
}
