package metadata_test

import (
	"strings"
	"testing"

	"brainrot/internal/metadata"
)

func TestSanitizeTitleCollapsesWhitespaceAndSymbols(t *testing.T) {
	got := metadata.SanitizeTitle("  My   Title ✨ Rocks ")
	if got != "My Title Rocks" {
		t.Fatalf("got %q", got)
	}
}

func TestSanitizeTitleCapsLengthOnWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := metadata.SanitizeTitle(long)
	if len(got) > metadata.MaxTitleLength {
		t.Fatalf("len = %d", len(got))
	}
	if strings.HasSuffix(got, " wor") {
		t.Fatalf("cut mid-word: %q", got)
	}
}

func TestSanitizeTitleRecasesShoutyTitles(t *testing.T) {
	got := metadata.SanitizeTitle("I CANNOT BELIEVE THIS HAPPENED")
	if got != "I Cannot Believe This Happened" {
		t.Fatalf("got %q", got)
	}
}

func TestIsRefusal(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"I Cannot Help With That", true},
		{"Sorry, unable to process this request", true},
		{"We cannot create content like this", true},
		{"A Perfectly Fine Title #shorts", false},
	}
	for _, tc := range cases {
		if got := metadata.IsRefusal(tc.title); got != tc.want {
			t.Fatalf("IsRefusal(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}
