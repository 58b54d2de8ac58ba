package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/japaniel/vocabdrill/pkg/answer"
	"github.com/japaniel/vocabdrill/pkg/db"
)

// Commands typed at the prompt.
const (
	DefaultQuitCommand = ":q"
	BackCommand        = ":b"
	NextCommand        = ":n"
	escape             = "\x1b"
)

const promptText = "> "

// Cards draws the next word for the session.
type Cards interface {
	Next() db.Word
}

// Evaluator scores a guess against a gloss.
type Evaluator interface {
	Evaluate(guess, reference string) answer.Evaluation
}

// ReadingAnnotator returns a pronunciation hint for a headword, or "".
type ReadingAnnotator interface {
	Reading(headword string) string
}

// Controller runs the prompt, guess, verdict loop.
type Controller struct {
	Cards     Cards
	Evaluator Evaluator
	Input     LineReader
	Out       io.Writer

	// QuitCommand ends the session. Empty means DefaultQuitCommand.
	QuitCommand string
	// Readings is optional; when set, verdicts include the headword's reading.
	Readings ReadingAnnotator
	// NearMissHints adds a spelling hint to wrong guesses that were close.
	NearMissHints bool
	Logger        *slog.Logger
}

type action int

const (
	actionInput action = iota
	actionQuit
	actionBack
	actionNext
)

func (c *Controller) classify(line string) action {
	quit := c.QuitCommand
	if quit == "" {
		quit = DefaultQuitCommand
	}
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == quit || strings.Contains(line, escape):
		return actionQuit
	case trimmed == BackCommand:
		return actionBack
	case trimmed == NextCommand:
		return actionNext
	}
	return actionInput
}

// Run drives the session until the quit command, end of input, or ctx is done.
// It returns the final state; ending on quit or EOF is not an error.
func (c *Controller) Run(ctx context.Context) (State, error) {
	st := New(c.Cards.Next())
	c.render(st)

	for {
		line, err := c.Input.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		st = c.Step(st, line)
		if st.Quit() {
			return st, nil
		}
		c.render(st)
	}
}

// Step applies one line of input to st.
func (c *Controller) Step(st State, line string) State {
	switch c.classify(line) {
	case actionQuit:
		return st.quit()
	case actionBack:
		return st.Back()
	case actionNext:
		if st.AcceptsGuess() {
			return st
		}
	default:
		if st.AcceptsGuess() {
			card := st.Current()
			ev := c.Evaluator.Evaluate(line, card.Word.Gloss)
			if c.Logger != nil {
				c.Logger.Debug("guess evaluated", "word_id", card.Word.ID, "score", ev.Score, "correct", ev.Correct)
			}
			return st.Guess(line, ev)
		}
	}
	if st.NeedsCard() {
		return st.Push(c.Cards.Next())
	}
	return st.Advance()
}

func (c *Controller) render(st State) {
	card := st.Current()
	w := card.Word
	fmt.Fprintf(c.Out, "\n%s (%d)\n", w.Headword, w.Level)

	if !st.Revealed() {
		if st.AcceptsGuess() {
			fmt.Fprint(c.Out, promptText)
		}
		return
	}

	switch {
	case card.Answered() && card.Evaluation.Correct:
		fmt.Fprintf(c.Out, "Correct: %s\n", w.Gloss)
	default:
		fmt.Fprintf(c.Out, "Answer: %s\n", w.Gloss)
		if c.NearMissHints && card.Answered() && answer.NearMiss(card.Guess, w.Gloss) {
			fmt.Fprintln(c.Out, "(close, check your spelling)")
		}
	}
	if c.Readings != nil {
		if r := c.Readings.Reading(w.Headword); r != "" {
			fmt.Fprintf(c.Out, "Reading: %s\n", r)
		}
	}
}
