package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/garyellow/groundwater-bot-go/internal/report"
	"github.com/garyellow/groundwater-bot-go/internal/storage"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

const reportPrefix = "reports/"

var (
	exportLocation string
	exportOut      string
	exportUpload   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the xlsx report of one location",
	Long:  "Looks up a location case-insensitively, writes its xlsx report to a file and optionally uploads it to R2 under reports/.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if exportUpload && !cfg.R2.Enabled() {
			return eris.New("export: --upload needs the GW_R2_* settings")
		}

		db, err := storage.New(ctx, cfg.SQLitePath())
		if err != nil {
			return eris.Wrap(err, "export: open database")
		}
		defer func() { _ = db.Close() }()

		rec, err := db.GetRecordByLocation(ctx, exportLocation)
		if err != nil {
			return eris.Wrapf(err, "export: %s", exportLocation)
		}

		out := exportOut
		if out == "" {
			out = report.Filename(exportLocation)
		}
		f, err := os.Create(out)
		if err != nil {
			return eris.Wrap(err, "export: create output")
		}
		if err := report.Write(f, exportLocation, *rec); err != nil {
			_ = f.Close()
			return eris.Wrap(err, "export: write report")
		}
		if err := f.Close(); err != nil {
			return eris.Wrap(err, "export: close output")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)

		if !exportUpload {
			return nil
		}

		objects, err := objectStore(ctx)
		if err != nil {
			return err
		}
		body, err := os.Open(out)
		if err != nil {
			return eris.Wrap(err, "export: reopen output")
		}
		defer func() { _ = body.Close() }()

		key := reportPrefix + report.Filename(exportLocation)
		etag, err := objects.Upload(ctx, key, body, report.ContentType)
		if err != nil {
			return eris.Wrap(err, "export: upload")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded r2://%s/%s (etag %s)\n", objects.Bucket(), key, etag)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportLocation, "location", "", "location name, matched case-insensitively")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (defaults to groundwater_report_<location>.xlsx)")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "also upload the report to R2")
	_ = exportCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(exportCmd)
}
