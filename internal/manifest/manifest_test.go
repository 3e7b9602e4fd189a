package manifest_test

import (
	"errors"
	"testing"
	"time"

	"aifm/internal/manifest"
)

func samplePayload() manifest.Payload {
	return manifest.Payload{
		Filename:  "song.wav",
		SizeBytes: 1000,
		SHA256Hex: abcDigest,
	}
}

func TestBuildPopulatesManifest(t *testing.T) {
	now := time.Date(2026, time.March, 14, 9, 26, 53, 589793, time.UTC)
	man := manifest.Build(manifest.Fields{
		Title:           " Test ",
		Mode:            manifest.ModeHumanDirectedAI,
		Tier:            manifest.TierSDA,
		Author:          "Alice",
		Contact:         "alice@example.com",
		AISystem:        "Suno",
		AttestationURLs: []string{" https://example.com/post ", "", "https://example.org"},
	}, samplePayload(), now)

	if man.SchemaVersion != manifest.SchemaVersion {
		t.Fatalf("unexpected schema version %q", man.SchemaVersion)
	}
	if man.Title != "Test" {
		t.Fatalf("expected trimmed title, got %q", man.Title)
	}
	if !man.CreatedAt.Equal(now.Truncate(time.Second)) {
		t.Fatalf("expected created_at truncated to seconds, got %v", man.CreatedAt)
	}
	if len(man.AttestationURLs) != 2 {
		t.Fatalf("expected 2 attestation urls, got %d", len(man.AttestationURLs))
	}
	if man.AttestationURLs[0] != "https://example.com/post" {
		t.Fatalf("expected trimmed url, got %q", man.AttestationURLs[0])
	}
	if man.Payload != samplePayload() {
		t.Fatalf("payload record altered: %+v", man.Payload)
	}
	if err := man.Validate(); err != nil {
		t.Fatalf("built manifest failed validation: %v", err)
	}
}

func TestBuildDefaultsEmptyTitle(t *testing.T) {
	man := manifest.Build(manifest.Fields{
		Mode: manifest.ModeAutonomousAI,
		Tier: manifest.TierPVA,
	}, samplePayload(), time.Now())
	if man.Title != "Untitled" {
		t.Fatalf("expected Untitled, got %q", man.Title)
	}
}

func TestBuildNeverProducesNilURLs(t *testing.T) {
	man := manifest.Build(manifest.Fields{
		Mode: manifest.ModeHumanDirectedAI,
		Tier: manifest.TierSDA,
	}, samplePayload(), time.Now())
	if man.AttestationURLs == nil {
		t.Fatal("attestation_urls must serialize as an empty list, not null")
	}
}

func TestValidateRejectsBrokenManifests(t *testing.T) {
	base := manifest.Build(manifest.Fields{
		Title: "Test",
		Mode:  manifest.ModeHumanDirectedAI,
		Tier:  manifest.TierSDA,
	}, samplePayload(), time.Now())

	cases := []struct {
		name   string
		mutate func(*manifest.Manifest)
		claim  bool
	}{
		{name: "future schema", mutate: func(m *manifest.Manifest) { m.SchemaVersion = "1.0" }},
		{name: "empty schema", mutate: func(m *manifest.Manifest) { m.SchemaVersion = "" }},
		{name: "empty title", mutate: func(m *manifest.Manifest) { m.Title = " " }},
		{name: "unknown mode", mutate: func(m *manifest.Manifest) { m.Mode = "telepathic" }, claim: true},
		{name: "unknown tier", mutate: func(m *manifest.Manifest) { m.Tier = "GOLD" }, claim: true},
		{name: "no payload filename", mutate: func(m *manifest.Manifest) { m.Payload.Filename = "" }},
		{name: "no payload hash", mutate: func(m *manifest.Manifest) { m.Payload.SHA256Hex = "" }},
		{name: "negative size", mutate: func(m *manifest.Manifest) { m.Payload.SizeBytes = -1 }},
		{name: "zero created_at", mutate: func(m *manifest.Manifest) { m.CreatedAt = time.Time{} }},
	}

	for _, tc := range cases {
		man := base
		tc.mutate(&man)
		err := man.Validate()
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		if tc.claim && !errors.Is(err, manifest.ErrInvalidClaim) {
			t.Fatalf("%s: expected ErrInvalidClaim, got %v", tc.name, err)
		}
	}
}

func TestValidateAcceptsAbsentFreeTextClaims(t *testing.T) {
	man := manifest.Build(manifest.Fields{
		Title: "Test",
		Mode:  manifest.ModeHumanDirectedAI,
		Tier:  manifest.TierSDA,
	}, samplePayload(), time.Now())
	// Author, contact, and ai_system are unvalidated free text.
	if err := man.Validate(); err != nil {
		t.Fatalf("expected manifest without free-text claims to validate: %v", err)
	}
}

func TestSchemaCompatible(t *testing.T) {
	cases := map[string]bool{
		"0.1":     true,
		"0.2":     true,
		"0.99":    true,
		"1.0":     false,
		"2.1":     false,
		"":        false,
		"0":       false,
		"garbage": false,
	}
	for version, want := range cases {
		if got := manifest.SchemaCompatible(version); got != want {
			t.Fatalf("SchemaCompatible(%q) = %v, want %v", version, got, want)
		}
	}
}
