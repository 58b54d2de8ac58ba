package session

import (
	"github.com/japaniel/vocabdrill/pkg/answer"
	"github.com/japaniel/vocabdrill/pkg/db"
)

// Card is one drawn word and, once answered, the guess made for it.
type Card struct {
	Word       db.Word
	Guess      string
	Evaluation *answer.Evaluation
}

// Answered reports whether a guess was recorded for the card.
func (c Card) Answered() bool { return c.Evaluation != nil }

// State is the position of a drill session. Values are never modified in
// place; every transition returns a new State.
//
// The user moves through the history of drawn cards. Each card is shown first
// with its headword only and then revealed with its answer. Only the newest
// card takes a guess, and only until it has one.
type State struct {
	history  []Card
	pos      int
	revealed bool
	done     bool
}

// New starts a session on first.
func New(first db.Word) State {
	return State{history: []Card{{Word: first}}}
}

// Current is the card being shown.
func (s State) Current() Card { return s.history[s.pos] }

// Position is the index of the current card in the history.
func (s State) Position() int { return s.pos }

// Len is the number of cards drawn so far.
func (s State) Len() int { return len(s.history) }

// Revealed reports whether the current card's answer is shown.
func (s State) Revealed() bool { return s.revealed }

// AtNewest reports whether the current card is the most recently drawn one.
func (s State) AtNewest() bool { return s.pos == len(s.history)-1 }

// AcceptsGuess reports whether input should be treated as a guess.
func (s State) AcceptsGuess() bool {
	return s.AtNewest() && !s.revealed && !s.Current().Answered()
}

// NeedsCard reports whether advancing requires a newly drawn word.
func (s State) NeedsCard() bool {
	return s.AtNewest() && s.revealed
}

// Guess records the evaluated guess on the newest card and reveals it.
// It returns s unchanged when no guess is accepted.
func (s State) Guess(guess string, ev answer.Evaluation) State {
	if !s.AcceptsGuess() {
		return s
	}
	next := s.withHistory()
	card := &next.history[next.pos]
	card.Guess = guess
	card.Evaluation = &ev
	next.revealed = true
	return next
}

// Advance moves one step forward: reveal the current card, or move on to the
// next card in the history. On the newest revealed card use Push instead; on
// an unanswered newest card Advance does nothing.
func (s State) Advance() State {
	switch {
	case !s.revealed && s.AcceptsGuess():
		return s
	case !s.revealed:
		s.revealed = true
	case !s.AtNewest():
		s.pos++
		s.revealed = false
	}
	return s
}

// Push appends a newly drawn word and makes it current.
func (s State) Push(w db.Word) State {
	next := s.withHistory()
	next.history = append(next.history, Card{Word: w})
	next.pos = len(next.history) - 1
	next.revealed = false
	return next
}

// Back moves one step backward: hide the current card's answer, or go to the
// previous card with its answer shown.
func (s State) Back() State {
	switch {
	case s.revealed:
		s.revealed = false
	case s.pos > 0:
		s.pos--
		s.revealed = true
	}
	return s
}

// Quit reports whether the user ended the session.
func (s State) Quit() bool { return s.done }

func (s State) quit() State {
	s.done = true
	return s
}

// Summary counts answered and correct cards.
func (s State) Summary() Summary {
	var sum Summary
	for _, c := range s.history {
		if !c.Answered() {
			continue
		}
		sum.Answered++
		if c.Evaluation.Correct {
			sum.Correct++
		}
	}
	return sum
}

// Summary is the tally of a session. It is not persisted.
type Summary struct {
	Answered int
	Correct  int
}

func (s State) withHistory() State {
	h := make([]Card, len(s.history), len(s.history)+1)
	copy(h, s.history)
	s.history = h
	return s
}
