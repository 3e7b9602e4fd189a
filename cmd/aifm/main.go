package main

import (
	"errors"
	"fmt"
	"os"

	"aifm/internal/container"
	"aifm/internal/manifest"
)

// Exit codes are part of the CLI contract: scripts distinguish a tampered
// payload from structural failures by code alone.
const (
	exitFailure            = 1
	exitInputNotFound      = 2
	exitInvalidClaim       = 3
	exitMalformedContainer = 4
	exitMalformedManifest  = 5
	exitPayloadMissing     = 6
	exitTampered           = 7
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, container.ErrInputNotFound):
		return exitInputNotFound
	case errors.Is(err, manifest.ErrInvalidClaim):
		return exitInvalidClaim
	case errors.Is(err, container.ErrMalformedContainer):
		return exitMalformedContainer
	case errors.Is(err, container.ErrMalformedManifest):
		return exitMalformedManifest
	case errors.Is(err, container.ErrPayloadMissing):
		return exitPayloadMissing
	case errors.Is(err, errTampered):
		return exitTampered
	default:
		return exitFailure
	}
}
