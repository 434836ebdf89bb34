// Package llm talks to an OpenAI-compatible chat completions endpoint with
// bounded retries. Metadata generation is its only caller.
package llm
