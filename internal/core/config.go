// Package core holds the small runtime types shared by the engine and the
// presentation layers: runtime configuration, input actions and the RNG.
package core

import (
	"math/rand"
	"strings"
	"time"
)

// RuntimeConfig contains configuration passed to a play session.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed; 0 means seed from the clock
	Profile string // Progress namespace for the player
}

// DefaultProfile is the profile used for local play.
const DefaultProfile = "local"

// NormalizeProfile maps a user-supplied name to its progress namespace.
// Names are case-insensitive, so "Alice" over HTTP and "alice" over SSH
// share progress. Blank names map to DefaultProfile.
func NormalizeProfile(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultProfile
	}
	return name
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time
		Profile: DefaultProfile,
	}
}

// NewRand returns a random source for puzzle generation.
// A zero seed yields a clock-seeded source, so rounds are not reproducible
// unless a seed was asked for explicitly.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
