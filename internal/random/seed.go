// Package random provides seed generation for the simulator's generators.
//
// Seeds come from crypto/rand so that runs without an explicit seed are
// independent of each other and of the wall clock.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	return seedFrom(crand.Reader)
}

func seedFrom(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// Resolve returns seed unchanged unless it is zero, in which case a fresh
// seed is generated.
func Resolve(seed uint64) (uint64, error) {
	if seed != 0 {
		return seed, nil
	}
	return NewSeed()
}
