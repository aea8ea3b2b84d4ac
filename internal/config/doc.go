// Package config loads, validates, and normalizes transcriptor configuration.
//
// Configuration lives in a TOML file (default ~/.config/transcriptor/config.toml,
// with ./transcriptor.toml as a project-local fallback). All path fields are
// tilde-expanded and made absolute during load, so consumers never deal with
// relative or unexpanded paths.
package config
