package manifest_test

import (
	"errors"
	"testing"

	"aifm/internal/manifest"
)

func TestParseModeAcceptsClosedSet(t *testing.T) {
	for _, mode := range manifest.Modes() {
		parsed, err := manifest.ParseMode(string(mode))
		if err != nil {
			t.Fatalf("ParseMode(%q) returned error: %v", mode, err)
		}
		if parsed != mode {
			t.Fatalf("ParseMode(%q) = %q", mode, parsed)
		}
	}
}

func TestParseModeTrimsWhitespace(t *testing.T) {
	parsed, err := manifest.ParseMode("  human-directed-ai ")
	if err != nil {
		t.Fatalf("ParseMode returned error: %v", err)
	}
	if parsed != manifest.ModeHumanDirectedAI {
		t.Fatalf("unexpected mode %q", parsed)
	}
}

func TestParseModeRejectsUnknown(t *testing.T) {
	for _, value := range []string{"", "fully-human", "HUMAN-DIRECTED-AI", "ai"} {
		if _, err := manifest.ParseMode(value); !errors.Is(err, manifest.ErrInvalidClaim) {
			t.Fatalf("ParseMode(%q): expected ErrInvalidClaim, got %v", value, err)
		}
	}
}

func TestParseTierAcceptsClosedSet(t *testing.T) {
	for _, tier := range manifest.Tiers() {
		parsed, err := manifest.ParseTier(string(tier))
		if err != nil {
			t.Fatalf("ParseTier(%q) returned error: %v", tier, err)
		}
		if parsed != tier {
			t.Fatalf("ParseTier(%q) = %q", tier, parsed)
		}
	}
}

func TestParseTierRejectsUnknown(t *testing.T) {
	for _, value := range []string{"", "sda", "GOLD"} {
		if _, err := manifest.ParseTier(value); !errors.Is(err, manifest.ErrInvalidClaim) {
			t.Fatalf("ParseTier(%q): expected ErrInvalidClaim, got %v", value, err)
		}
	}
}
