package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for pipeline failures. Stages wrap their errors with one
// of these so the driver and tests can classify what went wrong without
// string matching.
var (
	ErrSourceUnavailable    = errors.New("source unavailable")
	ErrNoValidRecord        = errors.New("no valid record")
	ErrAcquisitionExhausted = errors.New("acquisition exhausted")
	ErrGenerationFailed     = errors.New("generation failed")
	ErrSynthesisFailed      = errors.New("synthesis failed")
	ErrRenderFailed         = errors.New("render failed")
	ErrSplitFailed          = errors.New("split failed")
	ErrPublishFailed        = errors.New("publish failed")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Recoverable reports whether an error may be consumed as a retry inside the
// acquisition loop. Everything else aborts the run.
func Recoverable(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
