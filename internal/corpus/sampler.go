package corpus

import (
	"encoding/csv"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"brainrot/internal/services"
)

// Column positions in the corpus CSV.
const (
	bodyColumn  = 9
	titleColumn = 10
)

const (
	defaultScanAttempts  = 100
	defaultApproxRecords = 100_000
	defaultWindowSize    = 10
)

// Record is one raw candidate sampled from the corpus. Immutable once
// sampled; rejected records are discarded, never persisted.
type Record struct {
	Body  string
	Title string
}

// Text returns the narration text for the record: title followed by body.
func (r Record) Text() string {
	return strings.TrimSpace(r.Title + " " + r.Body)
}

// Sampler draws candidate records from a flat CSV corpus.
//
// Sampling policy: rather than scanning the whole corpus, each attempt skips
// a uniform random number of records within an approximate corpus-size bound
// and then scans a small fixed window. On very large corpora this bounds
// latency at the cost of exactness; it is a biased approximation to uniform
// sampling, not a uniform draw.
type Sampler struct {
	path          string
	scanAttempts  int
	approxRecords int
	windowSize    int
	intN          func(int) int
}

// Option configures the sampler.
type Option func(*Sampler)

// WithScanAttempts overrides the number of randomized scans per Sample call.
func WithScanAttempts(attempts int) Option {
	return func(s *Sampler) {
		if attempts > 0 {
			s.scanAttempts = attempts
		}
	}
}

// WithApproxRecords overrides the assumed corpus size bound for random skips.
func WithApproxRecords(records int) Option {
	return func(s *Sampler) {
		if records > 0 {
			s.approxRecords = records
		}
	}
}

// WithWindowSize overrides how many records each scan inspects after skipping.
func WithWindowSize(size int) Option {
	return func(s *Sampler) {
		if size > 0 {
			s.windowSize = size
		}
	}
}

// WithRand overrides the random source (useful for tests).
func WithRand(intN func(int) int) Option {
	return func(s *Sampler) {
		if intN != nil {
			s.intN = intN
		}
	}
}

// NewSampler builds a sampler over the CSV corpus at path.
func NewSampler(path string, opts ...Option) *Sampler {
	s := &Sampler{
		path:          path,
		scanAttempts:  defaultScanAttempts,
		approxRecords: defaultApproxRecords,
		windowSize:    defaultWindowSize,
		intN:          rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns one valid record, or a services.ErrNoValidRecord failure
// once the attempt budget is spent. An unreadable corpus is a
// services.ErrSourceUnavailable failure.
func (s *Sampler) Sample() (Record, error) {
	for attempt := 0; attempt < s.scanAttempts; attempt++ {
		record, found, err := s.scanOnce(s.intN(s.approxRecords))
		if err != nil {
			return Record{}, err
		}
		if found {
			return record, nil
		}
	}
	return Record{}, services.Wrap(services.ErrNoValidRecord, "corpus", "sample",
		"no valid record found after sampling", nil)
}

func (s *Sampler) scanOnce(skip int) (Record, bool, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return Record{}, false, services.Wrap(services.ErrSourceUnavailable, "corpus", "open", s.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	// Header row.
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, false, nil
		}
		return Record{}, false, services.Wrap(services.ErrSourceUnavailable, "corpus", "read header", s.path, err)
	}

	for i := 0; i < skip; i++ {
		if _, err := reader.Read(); err != nil {
			// Reached EOF (or a malformed tail) while skipping; this scan
			// simply found nothing.
			return Record{}, false, nil
		}
	}

	for i := 0; i < s.windowSize; i++ {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Record{}, false, nil
			}
			// Malformed rows are skipped, not fatal.
			continue
		}
		if record, ok := extractRecord(row); ok {
			return record, true, nil
		}
	}
	return Record{}, false, nil
}

func extractRecord(row []string) (Record, bool) {
	body := field(row, bodyColumn)
	title := field(row, titleColumn)
	if !validText(body) || !validText(title) {
		return Record{}, false
	}
	return Record{Body: normalizeField(body), Title: normalizeField(title)}, true
}

func field(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// validText reports whether a candidate field qualifies: non-empty and free
// of the corpus removal markers.
func validText(text string) bool {
	return text != "" && !strings.Contains(text, "[removed]") && !strings.Contains(text, "[deleted]")
}

var fieldNormalizer = strings.NewReplacer(`\n`, " ", "\n", " ", `\`, "")

func normalizeField(text string) string {
	return strings.TrimSpace(fieldNormalizer.Replace(text))
}
