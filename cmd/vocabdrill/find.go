package main

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/japaniel/vocabdrill/pkg/config"
	"github.com/japaniel/vocabdrill/pkg/db"
	"github.com/spf13/cobra"
)

// NewFindCommand fuzzy-searches headwords and glosses.
func NewFindCommand(logger *slog.Logger, cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Search the deck by headword or translation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			query := strings.Join(args, " ")
			results, err := db.NewStore(conn).Search(cmd.Context(), query, limit)
			if err != nil {
				return err
			}
			logger.Debug("search finished", "query", query, "results", len(results))

			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No words match %q.\n", query)
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLEVEL\tHEADWORD\tGLOSS")
			for _, r := range results {
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", r.Word.ID, r.Word.Level, r.Word.Headword, r.Word.Gloss)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum results (0 for all)")
	return cmd
}
