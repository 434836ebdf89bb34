package metadata

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxTitleLength is the platform limit for published titles.
const MaxTitleLength = 100

var titleCaser = cases.Title(language.English)

// SanitizeTitle normalizes a generated title for publishing: symbols outside
// the ASCII range become spaces, whitespace collapses to single spaces, and
// the result is capped at MaxTitleLength on a word boundary where possible.
// Titles that come back as a single case are re-cased so the feed does not
// fill with all-caps entries.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if r > unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	sanitized := strings.Join(strings.Fields(b.String()), " ")

	if sanitized != "" && (sanitized == strings.ToUpper(sanitized) || sanitized == strings.ToLower(sanitized)) {
		sanitized = titleCaser.String(strings.ToLower(sanitized))
	}

	if len(sanitized) > MaxTitleLength {
		cut := sanitized[:MaxTitleLength]
		if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
			cut = cut[:idx]
		}
		sanitized = strings.TrimSpace(cut)
	}
	return sanitized
}
