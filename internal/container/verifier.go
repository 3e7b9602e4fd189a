package container

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"aifm/internal/logging"
	"aifm/internal/manifest"
)

// Verdict is the integrity outcome of a verification run. Tampered is a
// normal, reportable outcome, not a structural failure.
type Verdict string

const (
	VerdictVerified Verdict = "verified"
	VerdictTampered Verdict = "tampered"
)

// MetadataDocument is one informative document found under metadata/.
type MetadataDocument struct {
	Kind MetadataKind
	Text string
}

// Report carries everything a verification run surfaces: the decoded
// manifest, the recomputed digest, the verdict, and the informative metadata
// documents present in the archive.
type Report struct {
	Path           string
	Manifest       manifest.Manifest
	ComputedSHA256 string
	Verdict        Verdict
	Metadata       []MetadataDocument
}

// Verified reports whether the recomputed payload digest matched the claim.
func (r *Report) Verified() bool {
	return r.Verdict == VerdictVerified
}

// Verifier opens containers and checks payload integrity. It never mutates
// the input file.
type Verifier struct {
	logger *slog.Logger
}

// NewVerifier returns a Verifier logging through logger. A nil logger is
// replaced with a no-op logger.
func NewVerifier(logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Verifier{logger: logger}
}

// Verify opens the container at path, decodes and validates the manifest,
// recomputes the payload digest over the archived bytes, and reports the
// verdict alongside every declared claim and metadata document.
func (v *Verifier) Verify(path string) (*Report, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: container %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("inspect container: %w", err)
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid archive: %v", ErrMalformedContainer, path, err)
	}
	defer archive.Close()

	man, err := decodeManifest(&archive.Reader)
	if err != nil {
		return nil, err
	}

	entry := findEntry(&archive.Reader, payloadDir+man.Payload.Filename)
	if entry == nil {
		return nil, fmt.Errorf("%w: manifest references %s%s but the archive has no such entry", ErrPayloadMissing, payloadDir, man.Payload.Filename)
	}

	digest, err := hashEntry(entry)
	if err != nil {
		return nil, err
	}

	verdict := VerdictTampered
	if strings.EqualFold(digest, man.Payload.SHA256Hex) {
		verdict = VerdictVerified
	}

	metadata, err := collectMetadata(&archive.Reader)
	if err != nil {
		return nil, err
	}

	v.logger.Info("container verified",
		logging.String("container", path),
		logging.String("payload", man.Payload.Filename),
		logging.String("verdict", string(verdict)),
		logging.String("computed_sha256", digest),
	)

	return &Report{
		Path:           path,
		Manifest:       *man,
		ComputedSHA256: digest,
		Verdict:        verdict,
		Metadata:       metadata,
	}, nil
}

func decodeManifest(archive *zip.Reader) (*manifest.Manifest, error) {
	entry := findEntry(archive, manifestName)
	if entry == nil {
		return nil, fmt.Errorf("%w: archive has no %s entry", ErrMalformedContainer, manifestName)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open manifest entry: %w", err)
	}
	defer rc.Close()

	var man manifest.Manifest
	if err := json.NewDecoder(rc).Decode(&man); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformedManifest, manifestName, err)
	}
	if err := man.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedManifest, err)
	}
	return &man, nil
}

func hashEntry(entry *zip.File) (string, error) {
	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open payload entry: %w", err)
	}
	defer rc.Close()
	return manifest.SumReader(rc)
}

func collectMetadata(archive *zip.Reader) ([]MetadataDocument, error) {
	var docs []MetadataDocument
	for _, kind := range MetadataKinds() {
		entry := findEntry(archive, kind.entryName())
		if entry == nil {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s entry: %w", kind, err)
		}
		data, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s entry: %w", kind, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("close %s entry: %w", kind, closeErr)
		}
		docs = append(docs, MetadataDocument{Kind: kind, Text: string(data)})
	}
	return docs, nil
}

func findEntry(archive *zip.Reader, name string) *zip.File {
	for _, file := range archive.File {
		if file.Name == name {
			return file
		}
	}
	return nil
}
