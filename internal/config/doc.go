// Package config loads, normalizes, and validates AIFM toolkit configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AIFM_AUTHOR. Claim defaults configured here only fill in flags the user
// omitted; explicit command-line values always win.
package config
