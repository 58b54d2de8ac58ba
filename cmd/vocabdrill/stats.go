package main

import (
	"fmt"
	"log/slog"

	"github.com/japaniel/vocabdrill/pkg/config"
	"github.com/japaniel/vocabdrill/pkg/db"
	"github.com/spf13/cobra"
)

// NewStatsCommand prints how many words each level holds.
func NewStatsCommand(logger *slog.Logger, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show word counts per level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			counts, err := db.CountByLevel(conn)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			total := 0
			for _, c := range counts {
				fmt.Fprintf(out, "level %d: %d\n", c.Level, c.Count)
				total += c.Count
			}
			fmt.Fprintf(out, "total: %d\n", total)
			logger.Debug("stats printed", "db", cfg.DBPath, "total", total)
			return nil
		},
	}
}
