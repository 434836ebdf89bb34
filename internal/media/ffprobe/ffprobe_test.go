package ffprobe

import "testing"

func TestDurationSeconds(t *testing.T) {
	result := Result{Format: Format{Duration: "123.45"}}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationSecondsHandlesInvalidValues(t *testing.T) {
	for _, raw := range []string{"", "bad", "-5"} {
		result := Result{Format: Format{Duration: raw}}
		if result.DurationSeconds() != 0 {
			t.Fatalf("duration %q: expected 0, got %v", raw, result.DurationSeconds())
		}
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(t.Context(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
