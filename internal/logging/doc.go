// Package logging wires log/slog with the console and JSON handlers used by
// the CLI, plus small attr helpers so call sites stay terse.
package logging
