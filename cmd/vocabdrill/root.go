package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/japaniel/vocabdrill/pkg/answer"
	"github.com/japaniel/vocabdrill/pkg/config"
	"github.com/japaniel/vocabdrill/pkg/db"
	"github.com/japaniel/vocabdrill/pkg/reading"
	"github.com/japaniel/vocabdrill/pkg/selector"
	"github.com/japaniel/vocabdrill/pkg/session"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

// ErrNoWords is returned when a drill starts against an empty database.
var ErrNoWords = errors.New("no words in database")

// NewRootCommand builds the CLI. Without a subcommand it runs a drill.
func NewRootCommand(logger *slog.Logger) *cobra.Command {
	var cfgFile string
	cfg := &config.Config{}
	v := config.New()

	cmd := &cobra.Command{
		Use:   "vocabdrill [maxLevel]",
		Short: "Vocabulary flashcard drill",
		Long: `Shows a headword, reads your translation and tells you whether it matches.

Cards are drawn at random from words at or below maxLevel (0-3, default 0).
At the prompt, :b steps back through earlier cards, :n or an empty line
moves on, and the quit command (default :q) ends the drill.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			loaded, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			*cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			level := db.MinLevel
			if len(args) == 1 {
				var err error
				if level, err = parseLevelArg(args[0]); err != nil {
					return err
				}
			}
			return runDrill(cmd.Context(), logger, *cfg, level, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, toml or json)")
	config.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewImportCommand(logger, cfg))
	cmd.AddCommand(NewFindCommand(logger, cfg))
	cmd.AddCommand(NewStatsCommand(logger, cfg))
	return cmd
}

func parseLevelArg(s string) (int, error) {
	level, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("maxLevel must be an integer, got %q", s)
	}
	if level < db.MinLevel || level > db.MaxLevel {
		return 0, fmt.Errorf("maxLevel must be between %d and %d, got %d", db.MinLevel, db.MaxLevel, level)
	}
	return level, nil
}

func runDrill(ctx context.Context, logger *slog.Logger, cfg config.Config, maxLevel int, in io.Reader, out io.Writer) error {
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := db.CountWords(conn)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w %s; run `vocabdrill import <deck.tsv>` first", ErrNoWords, cfg.DBPath)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	cards, err := selector.New(ctx, db.NewStore(conn), maxLevel, rand.New(rand.NewPCG(seed, seed>>1)))
	if errors.Is(err, selector.ErrNoEligibleEntries) {
		return fmt.Errorf("no words at level %d or below in %s", maxLevel, cfg.DBPath)
	}
	if err != nil {
		return err
	}

	logger = logger.With("session", ulid.Make().String())
	logger.Info("drill started", "max_level", maxLevel, "eligible", cards.Len(), "seed", seed)

	ctrl := &session.Controller{
		Cards:         cards,
		Evaluator:     answer.NewMatcher(cfg.Threshold),
		Input:         session.NewScannerInput(in),
		Out:           out,
		QuitCommand:   cfg.QuitCommand,
		NearMissHints: cfg.Hints,
		Logger:        logger,
	}
	if cfg.Hints && anyNeedsReading(cards.Eligible()) {
		annotator, err := reading.NewAnnotator()
		if err != nil {
			logger.Warn("readings disabled", "error", err)
		} else {
			ctrl.Readings = annotator
		}
	}

	st, err := ctrl.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	sum := st.Summary()
	fmt.Fprintf(out, "\nAnswered %d, correct %d.\n", sum.Answered, sum.Correct)
	logger.Info("drill finished", "answered", sum.Answered, "correct", sum.Correct)
	return nil
}

func anyNeedsReading(words []db.Word) bool {
	for _, w := range words {
		if reading.NeedsReading(w.Headword) {
			return true
		}
	}
	return false
}
