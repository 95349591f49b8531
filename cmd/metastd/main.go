package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"metastd/internal"
	"metastd/internal/config"
	"metastd/internal/fields"
	applog "metastd/internal/log"
	"metastd/internal/pipeline"
	"metastd/internal/reference"
	"metastd/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "metastd <file>...",
	Short: "Standardize sample metadata tables",
	Long: `Reads each input table, finds the RUN accession columns and their
metadata columns, normalizes collection date, geographic location, serovar
and isolation source values, and writes <input>_standardized.csv next to
each input. Settings come from the environment or a .env file.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func main() {
	must(rootCmd.Execute())
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	must(err)

	applog.Configure(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger := applog.WithComponent("cli")

	variants, err := fields.Variants(cfg.Fields)
	must(err)
	for _, label := range []string{cfg.InputEncoding, cfg.OutputEncoding} {
		_, err := pipeline.Decoder(label)
		must(err)
	}

	ref, err := reference.Load(cfg.ResourceDir)
	must(err)
	logger.Debug().
		Int("countries", ref.Library.Len()).
		Int("replacements", ref.Countries.Len()).
		Int("provinces", ref.Provinces.Len()).
		Int("serovars", ref.Serovars.Len()).
		Int("isolation_rules", ref.Isolation.Len()).
		Msg("reference data loaded")

	var ledger *storage.DB
	if cfg.DBPath != "" {
		ledger, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.DBPath).Msg("run ledger disabled")
			ledger = nil
		} else {
			defer ledger.Close()
		}
	}

	svc := pipeline.NewService(cfg, ref, variants, ledger, cmd.OutOrStdout())
	summary := svc.ProcessAll(args)
	logger.Info().
		Str(applog.FieldRunID, summary.RunID).
		Int("written", summary.Count(internal.FileWritten)).
		Int("no_columns", summary.Count(internal.FileNoColumns)).
		Int("no_rows", summary.Count(internal.FileNoRows)).
		Int("failed", summary.Count(internal.FileFailed)).
		Msg("run complete")
	return nil
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
