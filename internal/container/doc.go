// Package container assembles and verifies AIFM containers.
//
// A container is a ZIP archive holding exactly one unmodified payload file
// under payload/, zero or more informative documents under metadata/, and the
// authoritative manifest.json at the archive root. The Builder stages the
// archive next to the requested output path and renames it into place only
// after assembly succeeds, so a failed build never publishes a truncated
// container. The Verifier is a pure read: it re-derives the payload digest
// from the archived bytes and reports Verified or Tampered without ever
// touching the input file.
package container
