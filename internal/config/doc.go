// Package config loads and validates sundry's TOML configuration.
package config
