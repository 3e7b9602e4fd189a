package manifest

import (
	"fmt"
	"strings"
)

// ErrInvalidClaim reports a mode or tier value outside its closed set.
var ErrInvalidClaim = fmt.Errorf("invalid claim")

// Mode identifies how a work was created relative to AI involvement.
type Mode string

const (
	ModeHumanDirectedAI Mode = "human-directed-ai"
	ModeAIAssistedHuman Mode = "ai-assisted-human"
	ModeAutonomousAI    Mode = "autonomous-ai"
)

// Tier identifies the disclosure tier of the authorship claim.
type Tier string

const (
	// TierSDA is "Self-Declared AI": the claim rests entirely on the
	// creator's own declaration.
	TierSDA Tier = "SDA"
	TierVC  Tier = "VC"
	TierPVA Tier = "PVA"
)

// Modes returns the closed set of recognized creation modes.
func Modes() []Mode {
	return []Mode{ModeHumanDirectedAI, ModeAIAssistedHuman, ModeAutonomousAI}
}

// Tiers returns the closed set of recognized disclosure tiers.
func Tiers() []Tier {
	return []Tier{TierSDA, TierVC, TierPVA}
}

// ParseMode maps a serialized mode string onto the closed Mode set.
func ParseMode(value string) (Mode, error) {
	candidate := Mode(strings.TrimSpace(value))
	for _, mode := range Modes() {
		if candidate == mode {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: mode %q is not recognized (expected one of %s)", ErrInvalidClaim, value, joinModes())
}

// ParseTier maps a serialized tier string onto the closed Tier set.
func ParseTier(value string) (Tier, error) {
	candidate := Tier(strings.TrimSpace(value))
	for _, tier := range Tiers() {
		if candidate == tier {
			return tier, nil
		}
	}
	return "", fmt.Errorf("%w: tier %q is not recognized (expected one of %s)", ErrInvalidClaim, value, joinTiers())
}

func joinModes() string {
	parts := make([]string, 0, len(Modes()))
	for _, mode := range Modes() {
		parts = append(parts, string(mode))
	}
	return strings.Join(parts, ", ")
}

func joinTiers() string {
	parts := make([]string, 0, len(Tiers()))
	for _, tier := range Tiers() {
		parts = append(parts, string(tier))
	}
	return strings.Join(parts, ", ")
}
