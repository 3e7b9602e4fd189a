package container

import "errors"

var (
	// ErrInputNotFound reports that a required or explicitly supplied file
	// is absent or unreadable.
	ErrInputNotFound = errors.New("input not found")

	// ErrMalformedContainer reports a file that is not a valid archive or
	// lacks the manifest entry.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrMalformedManifest reports a manifest entry that cannot be decoded
	// into the expected schema shape.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrPayloadMissing reports a payload entry referenced by the manifest
	// but absent from the archive.
	ErrPayloadMissing = errors.New("payload missing")
)
