package manifest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SchemaVersion is the manifest schema revision written by this build of the
// toolkit. Verification accepts any revision sharing the same major component.
const SchemaVersion = "0.1"

// Payload describes the single integrity-protected file under payload/.
type Payload struct {
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	SHA256Hex string `json:"sha256_hex"`
}

// Fields carries the declared claims supplied to a build. None of the
// free-text fields are validated; mode and tier must already be parsed.
type Fields struct {
	Title           string
	Description     string
	Mode            Mode
	Tier            Tier
	Author          string
	Contact         string
	AISystem        string
	AttestationURLs []string
}

// Manifest is the single authoritative record inside an AIFM container.
// Metadata documents under metadata/ are informative only and are never
// referenced by hash.
type Manifest struct {
	SchemaVersion   string    `json:"schema_version"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Mode            Mode      `json:"mode"`
	Tier            Tier      `json:"tier"`
	Author          string    `json:"author"`
	Contact         string    `json:"contact,omitempty"`
	AISystem        string    `json:"ai_system,omitempty"`
	AttestationURLs []string  `json:"attestation_urls"`
	Payload         Payload   `json:"payload"`
	CreatedAt       time.Time `json:"created_at"`
}

// Build assembles a manifest from declared claims, the computed payload
// record, and the build timestamp. It is a pure function: the caller supplies
// the clock so rebuilds always stamp a fresh created_at and tests can pin it.
func Build(fields Fields, payload Payload, now time.Time) Manifest {
	title := strings.TrimSpace(fields.Title)
	if title == "" {
		title = "Untitled"
	}
	urls := make([]string, 0, len(fields.AttestationURLs))
	for _, raw := range fields.AttestationURLs {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return Manifest{
		SchemaVersion:   SchemaVersion,
		Title:           title,
		Description:     strings.TrimSpace(fields.Description),
		Mode:            fields.Mode,
		Tier:            fields.Tier,
		Author:          strings.TrimSpace(fields.Author),
		Contact:         strings.TrimSpace(fields.Contact),
		AISystem:        strings.TrimSpace(fields.AISystem),
		AttestationURLs: urls,
		Payload:         payload,
		CreatedAt:       now.UTC().Truncate(time.Second),
	}
}

// Validate checks that a decoded manifest has the shape verification depends
// on. Free-text claims are accepted as-is; only the fields that drive the
// integrity check are required.
func (m *Manifest) Validate() error {
	if !SchemaCompatible(m.SchemaVersion) {
		return fmt.Errorf("schema_version %q is not supported (current %s)", m.SchemaVersion, SchemaVersion)
	}
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("title is required")
	}
	if _, err := ParseMode(string(m.Mode)); err != nil {
		return err
	}
	if _, err := ParseTier(string(m.Tier)); err != nil {
		return err
	}
	if strings.TrimSpace(m.Payload.Filename) == "" {
		return errors.New("payload.filename is required")
	}
	if strings.TrimSpace(m.Payload.SHA256Hex) == "" {
		return errors.New("payload.sha256_hex is required")
	}
	if m.Payload.SizeBytes < 0 {
		return fmt.Errorf("payload.size_bytes %d is negative", m.Payload.SizeBytes)
	}
	if m.CreatedAt.IsZero() {
		return errors.New("created_at is required")
	}
	return nil
}

// SchemaCompatible reports whether a manifest written under version can be
// verified by this revision. Compatibility follows the major component: any
// 0.x manifest is accepted, everything else is rejected.
func SchemaCompatible(version string) bool {
	major, _, found := strings.Cut(strings.TrimSpace(version), ".")
	if !found || major == "" {
		return false
	}
	current, _, _ := strings.Cut(SchemaVersion, ".")
	return major == current
}
