package metadata

import (
	"context"
	"strings"

	"brainrot/internal/services"
)

// Metadata is the derived publishing metadata for one accepted record.
// Immutable after creation.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
}

// TextCompleter is the narrow contract the generator needs from the
// text-generation collaborator.
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generator derives title/description/keyword metadata from a sampled record.
type Generator struct {
	completer TextCompleter
}

// NewGenerator builds a metadata generator on top of the given completer.
func NewGenerator(completer TextCompleter) *Generator {
	return &Generator{completer: completer}
}

// Generate produces metadata for the given narration text. Collaborator
// errors and empty responses surface as services.ErrGenerationFailed, which
// the acquisition loop treats as a consumed attempt rather than a run
// failure.
func (g *Generator) Generate(ctx context.Context, text string) (Metadata, error) {
	title, err := g.completer.Complete(ctx, titlePrompt, text)
	if err != nil {
		return Metadata{}, services.Wrap(services.ErrGenerationFailed, "metadata", "generate title", "", err)
	}
	title = SanitizeTitle(title)
	if title == "" {
		return Metadata{}, services.Wrap(services.ErrGenerationFailed, "metadata", "generate title", "empty title", nil)
	}

	description, err := g.completer.Complete(ctx, descriptionPrompt, text)
	if err != nil {
		return Metadata{}, services.Wrap(services.ErrGenerationFailed, "metadata", "generate description", "", err)
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return Metadata{}, services.Wrap(services.ErrGenerationFailed, "metadata", "generate description", "empty description", nil)
	}

	return Metadata{
		Title:       title,
		Description: description,
		Keywords:    ExtractKeywords(description),
	}, nil
}

// ExtractKeywords tokenizes the description on whitespace and keeps the
// tokens that start with the tag marker, stripped of the marker, preserving
// first-seen order.
func ExtractKeywords(description string) []string {
	var keywords []string
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(description) {
		if !strings.HasPrefix(token, "#") {
			continue
		}
		keyword := strings.TrimPrefix(token, "#")
		if keyword == "" {
			continue
		}
		if _, ok := seen[keyword]; ok {
			continue
		}
		seen[keyword] = struct{}{}
		keywords = append(keywords, keyword)
	}
	return keywords
}
