package session

import (
	"testing"

	"github.com/japaniel/vocabdrill/pkg/answer"
	"github.com/japaniel/vocabdrill/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	house  = db.Word{ID: 1, Level: 0, Headword: "집", Gloss: "house, home"}
	school = db.Word{ID: 2, Level: 0, Headword: "학교", Gloss: "school"}
	water  = db.Word{ID: 3, Level: 1, Headword: "물", Gloss: "water"}
)

var (
	right = answer.Evaluation{Score: 0, Correct: true}
	wrong = answer.Evaluation{Score: 1, Correct: false}
)

func TestNewState(t *testing.T) {
	st := New(house)
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, house, st.Current().Word)
	assert.True(t, st.AtNewest())
	assert.True(t, st.AcceptsGuess())
	assert.False(t, st.Revealed())
	assert.False(t, st.NeedsCard())
	assert.False(t, st.Quit())
}

func TestGuessRevealsNewestCard(t *testing.T) {
	st := New(house).Guess("house", right)
	assert.True(t, st.Revealed())
	assert.True(t, st.Current().Answered())
	assert.Equal(t, "house", st.Current().Guess)
	assert.False(t, st.AcceptsGuess())
	assert.True(t, st.NeedsCard())

	// A second guess is ignored.
	again := st.Guess("home", wrong)
	assert.Equal(t, "house", again.Current().Guess)
	assert.True(t, again.Current().Evaluation.Correct)
}

func TestTransitionsDoNotMutate(t *testing.T) {
	start := New(house)
	answered := start.Guess("house", right)
	pushed := answered.Push(school)

	assert.False(t, start.Current().Answered(), "Guess changed the original state")
	assert.Equal(t, 1, answered.Len(), "Push changed the original state")
	assert.Equal(t, 2, pushed.Len())

	// Guessing on a copy must not leak into its sibling.
	a := pushed.Guess("school", right)
	b := pushed.Guess("nope", wrong)
	assert.Equal(t, "school", a.Current().Guess)
	assert.Equal(t, "nope", b.Current().Guess)
	assert.False(t, pushed.Current().Answered())
}

func TestAdvanceOnUnansweredNewestIsNoop(t *testing.T) {
	st := New(house)
	assert.Equal(t, st, st.Advance())
}

func TestBackAndForwardThroughHistory(t *testing.T) {
	st := New(house).Guess("house", right).Push(school).Guess("x", wrong)

	// newest revealed -> newest hidden -> previous revealed -> previous hidden
	st = st.Back()
	require.Equal(t, 1, st.Position())
	assert.False(t, st.Revealed())
	assert.False(t, st.AcceptsGuess(), "answered card takes no new guess")

	st = st.Back()
	require.Equal(t, 0, st.Position())
	assert.True(t, st.Revealed())
	assert.False(t, st.AcceptsGuess())

	st = st.Back()
	assert.Equal(t, 0, st.Position())
	assert.False(t, st.Revealed())

	// Back on the first hidden card stays put.
	assert.Equal(t, st, st.Back())

	// Forward again: reveal, next card hidden, reveal, then a new card is needed.
	st = st.Advance()
	assert.True(t, st.Revealed())
	st = st.Advance()
	assert.Equal(t, 1, st.Position())
	assert.False(t, st.Revealed())
	st = st.Advance()
	assert.True(t, st.Revealed())
	assert.True(t, st.NeedsCard())
	assert.Equal(t, st, st.Advance())

	st = st.Push(water)
	assert.Equal(t, 2, st.Position())
	assert.True(t, st.AcceptsGuess())
}

func TestBackFromUnansweredNewest(t *testing.T) {
	st := New(house).Guess("house", right).Push(school)

	st = st.Back()
	assert.Equal(t, 0, st.Position())
	assert.True(t, st.Revealed())
	assert.False(t, st.AcceptsGuess())

	st = st.Advance()
	assert.Equal(t, 1, st.Position())
	assert.True(t, st.AcceptsGuess(), "returning to the unanswered newest card allows guessing")
}

func TestSummary(t *testing.T) {
	st := New(house).Guess("house", right).
		Push(school).Guess("x", wrong).
		Push(water)
	assert.Equal(t, Summary{Answered: 2, Correct: 1}, st.Summary())
}
