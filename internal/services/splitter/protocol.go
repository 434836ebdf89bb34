package splitter

import (
	"bufio"
	"strings"
)

// Kind tags a manifest entry by media type.
type Kind string

const (
	KindVideo Kind = "VIDEO"
	KindAudio Kind = "AUDIO"
)

// Entry is one (kind, filename) pair from the collaborator's manifest.
// Filenames are relative to the working directory passed to the collaborator.
type Entry struct {
	Kind     Kind
	Filename string
}

// originalMarker tags reference/leftover intermediates the collaborator
// emits alongside the deliverable parts. They are never published.
const originalMarker = "original"

// ParseManifest decodes the collaborator's newline-delimited `KIND:filename`
// response. Lines with unrecognized prefixes are skipped rather than failing
// the parse, so collaborators can add record kinds without breaking older
// consumers. Blank filenames are dropped.
func ParseManifest(raw string) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		kind, filename, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		filename = strings.TrimSpace(filename)
		if filename == "" {
			continue
		}
		switch Kind(kind) {
		case KindVideo, KindAudio:
			entries = append(entries, Entry{Kind: Kind(kind), Filename: filename})
		}
	}
	return entries
}

// IsOriginal reports whether a manifest entry is a non-publishable
// intermediate rather than a deliverable part.
func (e Entry) IsOriginal() bool {
	return strings.Contains(strings.ToLower(e.Filename), originalMarker)
}
