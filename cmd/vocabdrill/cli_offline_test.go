package main_test

import (
	"context"
	"database/sql"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func TestCLI_ImportAndDrill(t *testing.T) {
	tmp := t.TempDir()

	deckPath, err := filepath.Abs(filepath.Join("..", "..", "pkg", "deck", "testdata", "sample_deck.tsv"))
	if err != nil {
		t.Fatalf("resolve fixture: %v", err)
	}
	if _, err := os.Stat(deckPath); err != nil {
		t.Fatalf("missing fixture: %v", err)
	}

	dbPath := filepath.Join(tmp, "words.db")
	bin := filepath.Join(tmp, "vocabdrill.bin")

	// Build the CLI binary (use full import path so it builds correctly regardless of the current working directory)
	build := exec.Command("go", "build", "-o", bin, "github.com/japaniel/vocabdrill/cmd/vocabdrill")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	imp := exec.CommandContext(ctx, bin, "import", deckPath, "--db", dbPath)
	imp.Dir = tmp
	out, err := imp.CombinedOutput()
	if err != nil {
		t.Fatalf("import failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(string(out), "Imported 6 words") {
		t.Fatalf("unexpected import output:\n%s", out)
	}

	drill := exec.CommandContext(ctx, bin, "--db", dbPath, "--seed", "3", "0")
	drill.Dir = tmp
	drill.Stdin = strings.NewReader("house\n\n:q\n")
	out, err = drill.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		t.Fatalf("cli timed out, output:\n%s", out)
	}
	if err != nil {
		t.Fatalf("drill failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(string(out), "Answered 1, correct") {
		t.Fatalf("expected session summary, got:\n%s", out)
	}

	// Drilling never writes review data.
	dbConn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer dbConn.Close()
	var touched int
	if err := dbConn.QueryRow("SELECT COUNT(*) FROM words WHERE seen <> 0 OR score <> 0 OR last_reviewed <> ''").Scan(&touched); err != nil {
		t.Fatalf("db query failed: %v", err)
	}
	if touched != 0 {
		t.Fatalf("expected no review columns written, found %d rows", touched)
	}
}
