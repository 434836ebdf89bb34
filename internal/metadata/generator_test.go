package metadata_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"brainrot/internal/metadata"
	"brainrot/internal/services"
)

type scriptedCompleter struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	idx := s.calls
	s.calls++
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	if err != nil {
		return "", err
	}
	if idx < len(s.responses) {
		return s.responses[idx], nil
	}
	return "", errors.New("unexpected call")
}

func TestGenerateBuildsMetadata(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		"My Quirky Title #shorts",
		"A wild story. #shorts #redditconfessions #storytime",
	}}
	generator := metadata.NewGenerator(completer)

	meta, err := generator.Generate(t.Context(), "some script")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if meta.Title != "My Quirky Title #shorts" {
		t.Fatalf("title = %q", meta.Title)
	}
	want := []string{"shorts", "redditconfessions", "storytime"}
	if !reflect.DeepEqual(meta.Keywords, want) {
		t.Fatalf("keywords = %v, want %v", meta.Keywords, want)
	}
}

func TestGenerateWrapsCompleterFailure(t *testing.T) {
	completer := &scriptedCompleter{errs: []error{errors.New("http 500")}}
	_, err := metadata.NewGenerator(completer).Generate(t.Context(), "script")
	if !errors.Is(err, services.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestGenerateRejectsEmptyTitle(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"   "}}
	_, err := metadata.NewGenerator(completer).Generate(t.Context(), "script")
	if !errors.Is(err, services.ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestExtractKeywordsOrderAndDedup(t *testing.T) {
	description := "Wow. #shorts #redditconfessions #foo and #shorts again"
	want := []string{"shorts", "redditconfessions", "foo"}
	if got := metadata.ExtractKeywords(description); !reflect.DeepEqual(got, want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsIgnoresBareMarker(t *testing.T) {
	if got := metadata.ExtractKeywords("nothing here # alone"); got != nil {
		t.Fatalf("keywords = %v, want nil", got)
	}
}
