package reading

import (
	"strings"
	"unicode"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Annotator produces hiragana readings for Japanese headwords.
type Annotator struct {
	t *tokenizer.Tokenizer
}

// NewAnnotator creates a tokenizer backed by the IPA dictionary.
func NewAnnotator() (*Annotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Annotator{t: t}, nil
}

// NeedsReading reports whether s contains kanji or katakana.
// Hangul and kana-only headwords are already readable as written.
func NeedsReading(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Katakana, r) {
			return true
		}
	}
	return false
}

// Reading returns the hiragana reading of headword, or "" when none is needed
// or the dictionary does not know it.
func (a *Annotator) Reading(headword string) string {
	headword = strings.TrimSpace(headword)
	if !NeedsReading(headword) {
		return ""
	}

	var b strings.Builder
	for _, token := range a.t.Tokenize(headword) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}
		// IPA features: 7 is the katakana reading.
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			b.WriteString(features[7])
			continue
		}
		if token.Class == tokenizer.UNKNOWN && NeedsReading(token.Surface) {
			return ""
		}
		b.WriteString(token.Surface)
	}

	out := ToHiragana(b.String())
	if out == headword {
		return ""
	}
	return out
}

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
