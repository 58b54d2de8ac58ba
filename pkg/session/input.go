package session

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// LineReader supplies completed input lines.
// ReadLine returns io.EOF when input is exhausted.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// ScannerInput reads lines from an io.Reader. Reads happen on a separate
// goroutine so a blocked terminal read does not hold up cancellation.
type ScannerInput struct {
	lines chan lineResult
}

// NewScannerInput starts reading r.
func NewScannerInput(r io.Reader) *ScannerInput {
	in := &ScannerInput{lines: make(chan lineResult)}
	go in.run(r)
	return in
}

func (in *ScannerInput) run(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		in.lines <- lineResult{line: strings.TrimRight(sc.Text(), "\r")}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	in.lines <- lineResult{err: err}
	close(in.lines)
}

// ReadLine returns the next line, or ctx.Err() if ctx is done first.
func (in *ScannerInput) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-in.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}
