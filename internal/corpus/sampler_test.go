package corpus_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brainrot/internal/corpus"
	"brainrot/internal/services"
)

func writeCorpus(t *testing.T, rows ...string) string {
	t.Helper()
	header := "c0,c1,c2,c3,c4,c5,c6,c7,c8,selftext,title"
	path := filepath.Join(t.TempDir(), "confessions.csv")
	content := header + "\n" + strings.Join(rows, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func row(body, title string) string {
	return ",,,,,,,,," + body + "," + title
}

func TestSampleReturnsValidRecord(t *testing.T) {
	path := writeCorpus(t,
		row("[removed]", "gone"),
		row("i did a thing", "my confession"),
	)
	sampler := corpus.NewSampler(path,
		corpus.WithApproxRecords(2),
		corpus.WithScanAttempts(50),
		corpus.WithWindowSize(2),
	)

	record, err := sampler.Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for _, marker := range []string{"[removed]", "[deleted]"} {
		if strings.Contains(record.Body, marker) || strings.Contains(record.Title, marker) {
			t.Fatalf("record contains removal marker: %+v", record)
		}
	}
	if record.Title != "my confession" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Text() != "my confession i did a thing" {
		t.Fatalf("Text() = %q", record.Text())
	}
}

func TestSampleNormalizesEscapes(t *testing.T) {
	path := writeCorpus(t, row(`line one\nline two`, "a title"))
	sampler := corpus.NewSampler(path,
		corpus.WithApproxRecords(1),
		corpus.WithRand(func(int) int { return 0 }),
	)
	record, err := sampler.Sample()
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if record.Body != "line one line two" {
		t.Fatalf("body not normalized: %q", record.Body)
	}
}

func TestSampleExhaustsOnInvalidCorpus(t *testing.T) {
	path := writeCorpus(t,
		row("[removed]", "t"),
		row("[deleted]", "t"),
		row("", "t"),
	)
	sampler := corpus.NewSampler(path,
		corpus.WithApproxRecords(3),
		corpus.WithScanAttempts(5),
	)
	_, err := sampler.Sample()
	if !errors.Is(err, services.ErrNoValidRecord) {
		t.Fatalf("expected ErrNoValidRecord, got %v", err)
	}
}

func TestSampleMissingCorpusIsSourceUnavailable(t *testing.T) {
	sampler := corpus.NewSampler(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := sampler.Sample()
	if !errors.Is(err, services.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestSampleSkipBeyondEOFStillFindsRecordOnLaterScan(t *testing.T) {
	path := writeCorpus(t, row("body text", "title text"))
	calls := 0
	sampler := corpus.NewSampler(path,
		corpus.WithScanAttempts(2),
		corpus.WithRand(func(int) int {
			calls++
			if calls == 1 {
				return 1000 // far past EOF
			}
			return 0
		}),
	)
	if _, err := sampler.Sample(); err != nil {
		t.Fatalf("Sample: %v", err)
	}
}
