package main

import (
	"fmt"
	"log/slog"

	"github.com/japaniel/vocabdrill/pkg/config"
	"github.com/japaniel/vocabdrill/pkg/db"
	"github.com/japaniel/vocabdrill/pkg/deck"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// NewImportCommand loads a tab-separated deck file into the database.
func NewImportCommand(logger *slog.Logger, cfg *config.Config) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "import <deck.tsv>",
		Short: "Import a tab-separated word list",
		Long: `Reads a UTF-8 word list with a header line and the columns
id, level, part of speech, headword, gloss. Levels A-D (or 0-3) are stored as
0-3. Lines that do not parse are skipped and counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := deck.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("load deck: %w", err)
			}

			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			bar := progressbar.NewOptions(len(res.Words),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionSetDescription("importing"),
				progressbar.OptionClearOnFinish(),
			)

			im := deck.NewImporter(conn)
			if batchSize > 0 {
				im.BatchSize = batchSize
			}
			im.Logger = logger
			im.OnProgress = func(current, total int) {
				_ = bar.Set(current)
			}

			n, err := im.Import(cmd.Context(), res)
			_ = bar.Finish()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words into %s, skipped %d malformed lines.\n", n, cfg.DBPath, res.SkippedCount())
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Words per transaction (default 200)")
	return cmd
}
