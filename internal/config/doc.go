// Package config loads, normalizes, and validates dotsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Generator selection lives here as plain
// data: tag lists, custom character sets, combined sound components, and the
// ordered field-name fallbacks used when reading note content.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
