// Package random provides seed helpers for the rule catalog's random source.
//
// A configured seed replays a session exactly; without one, a high-entropy
// seed is read from crypto/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// SeedSource reports where a session seed came from.
type SeedSource string

const (
	SeedSourceConfig SeedSource = "config"
	SeedSourceCrypto SeedSource = "crypto"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns configured when it is non-zero, otherwise a seed from
// generate. A nil generate uses NewSeed.
func ResolveSeed(configured int64, generate func() (int64, error)) (int64, SeedSource, error) {
	if configured != 0 {
		return configured, SeedSourceConfig, nil
	}
	if generate == nil {
		generate = NewSeed
	}
	seed, err := generate()
	if err != nil {
		return 0, "", fmt.Errorf("generate seed: %w", err)
	}
	return seed, SeedSourceCrypto, nil
}
