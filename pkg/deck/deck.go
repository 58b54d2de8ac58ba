package deck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/japaniel/vocabdrill/pkg/db"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FieldCount is the number of tab-separated columns in a deck line:
// id, level, part of speech, headword, gloss.
const FieldCount = 5

const maxLineSize = 1 << 20

// levelTokens maps the letter grades used by published word lists to levels.
var levelTokens = map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}

// MalformedRecordError describes a deck line that could not be turned into a word.
type MalformedRecordError struct {
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// LoadResult holds the words parsed from a deck and the lines that were skipped.
type LoadResult struct {
	Words   []db.Word
	Skipped []*MalformedRecordError
}

// SkippedCount returns the number of malformed lines.
func (r *LoadResult) SkippedCount() int { return len(r.Skipped) }

// ParseLevel accepts a letter grade (A-D) or a numeric level (0-3).
func ParseLevel(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if lvl, ok := levelTokens[strings.ToUpper(tok)]; ok {
		return lvl, nil
	}
	lvl, err := strconv.Atoi(tok)
	if err != nil || lvl < db.MinLevel || lvl > db.MaxLevel {
		return 0, fmt.Errorf("unknown level %q", tok)
	}
	return lvl, nil
}

// LoadFile parses the deck at path.
func LoadFile(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a tab-separated deck. The first line is a header and is skipped.
// Input must be UTF-8; a leading byte order mark is dropped. Bad lines are
// collected in the result rather than failing the load. The returned error is
// only for read failures.
func Parse(r io.Reader) (*LoadResult, error) {
	sc := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	res := &LoadResult{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		w, err := parseLine(line)
		if err != nil {
			res.Skipped = append(res.Skipped, &MalformedRecordError{Line: lineNo, Reason: err.Error()})
			continue
		}
		res.Words = append(res.Words, w)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read deck at line %d: %w", lineNo+1, err)
	}
	return res, nil
}

func parseLine(line string) (db.Word, error) {
	if !utf8.ValidString(line) {
		return db.Word{}, fmt.Errorf("invalid UTF-8")
	}
	fields := strings.Split(line, "\t")
	if len(fields) != FieldCount {
		return db.Word{}, fmt.Errorf("expected %d fields, got %d", FieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || id <= 0 {
		return db.Word{}, fmt.Errorf("invalid id %q", fields[0])
	}
	level, err := ParseLevel(fields[1])
	if err != nil {
		return db.Word{}, err
	}
	headword := norm.NFC.String(fields[3])
	if headword == "" {
		return db.Word{}, fmt.Errorf("empty headword")
	}
	if fields[4] == "" {
		return db.Word{}, fmt.Errorf("empty gloss")
	}

	return db.Word{
		ID:           id,
		Level:        level,
		PartOfSpeech: fields[2],
		Headword:     headword,
		Gloss:        fields[4],
	}, nil
}
