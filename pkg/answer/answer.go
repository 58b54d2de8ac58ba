// Package answer scores a free-text translation guess against a reference gloss.
//
// A gloss may hold several acceptable phrasings separated by commas or by the
// word "or" ("quick or rapid, speedy"). The guess is compared with each
// phrasing using a bag-of-words cosine distance and the closest one wins.
package answer

import (
	"math"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultThreshold is the largest distance still accepted as correct.
const DefaultThreshold = 0.2

// nearMissSimilarity is the edit similarity above which a wrong guess is reported as close.
const nearMissSimilarity = 0.8

const phrasingSeparator = " or "

// stopWords are dropped before comparison.
var stopWords = map[string]struct{}{
	"a":           {},
	"the":         {},
	"to":          {},
	"be":          {},
	"(honorific)": {},
	"an":          {},
}

// Evaluation is the outcome of scoring one guess.
type Evaluation struct {
	// Score is the distance to the closest phrasing: 0 is identical, 1 shares no words.
	Score   float64
	Correct bool
}

// Matcher evaluates guesses against a fixed threshold.
type Matcher struct {
	Threshold float64
}

// NewMatcher returns a Matcher using threshold.
func NewMatcher(threshold float64) *Matcher {
	return &Matcher{Threshold: threshold}
}

// Evaluate scores guess against every phrasing in reference.
func (m *Matcher) Evaluate(guess, reference string) Evaluation {
	score := BestDistance(guess, reference)
	return Evaluation{Score: score, Correct: m.IsCorrect(score)}
}

// IsCorrect applies the threshold to a distance.
func (m *Matcher) IsCorrect(score float64) bool {
	return score <= m.Threshold
}

// Evaluate scores guess with DefaultThreshold.
func Evaluate(guess, reference string) Evaluation {
	return NewMatcher(DefaultThreshold).Evaluate(guess, reference)
}

// Normalize lowercases s, drops stop words and joins the rest with single spaces.
func Normalize(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	kept := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// Candidates splits a reference into normalized phrasings.
// Comma groups are normalized first and then split on " or ", so empty
// groups come back as empty strings.
func Candidates(reference string) []string {
	var out []string
	for _, group := range strings.Split(reference, ",") {
		out = append(out, strings.Split(Normalize(group), phrasingSeparator)...)
	}
	return out
}

// Distance is the bag-of-words cosine distance between two normalized strings.
// An empty side is always at distance 1. Repeated words can push the raw value
// below zero, so the result is clamped to [0, 1].
func Distance(a, b string) float64 {
	if a == "" || b == "" {
		return 1.0
	}
	countsA, totalA := wordCounts(a)
	countsB, totalB := wordCounts(b)

	dot := 0
	for w, n := range countsA {
		dot += n * countsB[w]
	}
	d := 1.0 - float64(dot)/math.Sqrt(float64(totalA*totalB))
	return math.Max(0, math.Min(1, d))
}

// BestDistance is the smallest Distance between the normalized guess and any candidate.
func BestDistance(guess, reference string) float64 {
	g := Normalize(guess)
	best := 1.0
	for _, c := range Candidates(reference) {
		if d := Distance(g, c); d < best {
			best = d
		}
	}
	return best
}

// NearMiss reports whether guess is spelled almost like one of the phrasings
// in reference. It is a hint only and does not affect the verdict.
func NearMiss(guess, reference string) bool {
	g := Normalize(guess)
	if g == "" {
		return false
	}
	lev := metrics.NewLevenshtein()
	for _, c := range Candidates(reference) {
		if c == "" || c == g {
			continue
		}
		if strutil.Similarity(g, c, lev) >= nearMissSimilarity {
			return true
		}
	}
	return false
}

func wordCounts(s string) (map[string]int, int) {
	counts := make(map[string]int)
	total := 0
	for _, w := range strings.Fields(s) {
		counts[w]++
		total++
	}
	return counts, total
}
