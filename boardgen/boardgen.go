// Package boardgen builds Boggle boards, either by rolling the sixteen
// classic letter cubes or from a user-supplied string of letters.
package boardgen

import (
	"math/rand"

	"github.com/bcspragu/Boggle/boggle"
)

// cubes are the letter dice from the original 4x4 game. Each cube lands on
// one of its six faces.
var cubes = []string{
	"AAEEGN",
	"ABBJOO",
	"ACHOPS",
	"AFFKPS",
	"AOOTTW",
	"CIMOTU",
	"DEILRX",
	"DELRVY",
	"DISTTY",
	"EEGHNW",
	"EEINSU",
	"EHRTVW",
	"EIOSST",
	"ELRTTY",
	"HIMNQU",
	"HLNNRZ",
}

// New rolls a random board of the given size. A standard-sized board uses
// each cube exactly once in a shuffled order. Other sizes draw a random cube
// for every cell, so the letter distribution stays Boggle-like.
func New(size int, r *rand.Rand) *boggle.Board {
	letters := make([]byte, 0, size*size)

	if size*size == len(cubes) {
		for _, idx := range r.Perm(len(cubes)) {
			cube := cubes[idx]
			letters = append(letters, cube[r.Intn(len(cube))])
		}
	} else {
		for i := 0; i < size*size; i++ {
			cube := cubes[r.Intn(len(cubes))]
			letters = append(letters, cube[r.Intn(len(cube))])
		}
	}

	b, err := boggle.NewBoard(string(letters), size)
	if err != nil {
		// The cubes only contain A-Z, so this can't happen.
		panic(err)
	}
	return b
}

// FromString builds a board from a flat row-major string of letters, as
// typed by a player setting up a manual board. The string must contain
// exactly size*size letters, lowercase is accepted.
func FromString(letters string, size int) (*boggle.Board, error) {
	return boggle.NewBoard(letters, size)
}
