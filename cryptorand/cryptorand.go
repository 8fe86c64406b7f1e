// Package cryptorand adapts the operating system's entropy pool to
// math/rand's Source interface, so board rolls and ID generation can be
// unpredictable without threading crypto APIs through everything.
package cryptorand

import (
	crand "crypto/rand"
	"encoding/binary"
)

// Source draws every value fresh from crypto/rand. Seeding is meaningless
// here, Seed is a no-op.
type Source struct{}

func NewSource() Source {
	return Source{}
}

func (Source) Int63() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Reading entropy doesn't fail on any platform we run on, and
		// rand.Source has no way to report it anyway.
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63))
}

func (Source) Seed(int64) {}
