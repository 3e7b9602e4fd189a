// Package manifest defines the authoritative AIFM manifest schema and the
// hashing procedure used for payload integrity.
//
// The manifest is the single source of truth inside a container: it carries
// the declared claims (title, creation mode, disclosure tier, authorship) and
// the SHA-256 digest of the payload as stored. Creation modes and disclosure
// tiers are closed enumerations; ParseMode and ParseTier are the only place
// claim values are semantically validated. Free-text claims (author, contact,
// ai_system) are recorded as supplied, never judged.
//
// Build is a pure constructor so builds stay deterministic apart from the
// caller-supplied timestamp; Validate is the decode-side counterpart used by
// the verifier.
package manifest
