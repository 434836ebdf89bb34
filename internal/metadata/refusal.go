package metadata

import "strings"

// refusalPhrases flag titles where the collaborator declined the request
// while still returning ordinary output. Matching is case-insensitive.
var refusalPhrases = []string{
	"cannot create content",
	"i cannot",
	"unable to process",
}

// IsRefusal reports whether a generated title looks like the collaborator
// refusing the request rather than answering it. Refusals trigger an
// acquisition retry, not a hard failure.
func IsRefusal(title string) bool {
	lowered := strings.ToLower(title)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
