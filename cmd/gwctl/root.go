// Command gwctl seeds the groundwater database, exports reports and lists
// LLM models from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/garyellow/groundwater-bot-go/internal/config"
	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/logger"
	"github.com/garyellow/groundwater-bot-go/internal/r2client"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gwctl",
	Short: "Groundwater bot maintenance tool",
	Long:  "Seeds the groundwater records table, exports xlsx reports and lists the Gemini models available to the fallback chain.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.LoadForMode(config.CLIMode)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		log = logger.NewWithWriter(cfg.LogLevel, os.Stderr).WithField("service", "gwctl")
		slog.SetDefault(log.Logger)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// objectStore returns the R2 client, or nil when R2 is not configured.
func objectStore(ctx context.Context) (*r2client.Client, error) {
	if !cfg.R2.Enabled() {
		return nil, nil
	}
	client, err := r2client.New(ctx, r2client.Config{
		Endpoint:    r2client.EndpointForAccount(cfg.R2.AccountID),
		AccessKeyID: cfg.R2.AccessKeyID,
		SecretKey:   cfg.R2.SecretAccessKey,
		BucketName:  cfg.R2.BucketName,
	})
	if err != nil {
		return nil, eris.Wrap(err, "create r2 client")
	}
	return client, nil
}

// printError shows the user-facing message of err, followed by the full
// chain when the two differ.
func printError(w io.Writer, err error) {
	msg := domerrors.GetUserMessage(err)
	fmt.Fprintln(w, "Error:", msg)
	if full := err.Error(); full != msg {
		fmt.Fprintln(w, "Cause:", full)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
