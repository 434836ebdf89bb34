// Command brainrot is the CLI for the short-form video production pipeline:
// it runs the pipeline, inspects run history, and manages the episode counter
// and configuration.
package main
