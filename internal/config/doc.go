// Package config loads, normalizes, and validates the TOML configuration for
// the brainrot CLI. Values resolve from the config file with environment
// fallbacks for secrets; all path fields are expanded to absolute paths.
package config
