// Package metadata derives publish metadata (title, description, keywords)
// from a sampled record via the text-generation collaborator, and owns the
// refusal and sanitization rules applied to its output.
package metadata
