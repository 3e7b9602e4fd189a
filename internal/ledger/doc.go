// Package ledger persists a local history of build and verification runs.
//
// The ledger is informative tooling only: it records what this machine built
// or verified (container path, payload name, digest, verdict, timestamp) so
// `aifm history` can answer "when did I last package this?". It plays no part
// in the integrity model; the manifest inside each container remains the sole
// authoritative record.
package ledger
