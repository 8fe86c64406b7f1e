package boardgen

import (
	"math/rand"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	r := rand.New(rand.NewSource(0))

	for _, size := range []int{2, 4, 5} {
		b := New(size, r)
		if b.Size != size {
			t.Errorf("New(%d) board size = %d", size, b.Size)
		}
		if len(b.Letters) != size*size {
			t.Errorf("New(%d) has %d letters, want %d", size, len(b.Letters), size*size)
		}
		for i := 0; i < len(b.Letters); i++ {
			if c := b.Letters[i]; c < 'A' || c > 'Z' {
				t.Errorf("New(%d) produced non-letter %q", size, c)
			}
		}
	}
}

func TestNewRollsCubeFaces(t *testing.T) {
	// Every letter on a generated board has to come off some cube's
	// faces, B or Z show up but a board can never contain, say, all Qs.
	b := New(4, rand.New(rand.NewSource(1)))

	for i := 0; i < len(b.Letters); i++ {
		onACube := false
		for _, cube := range cubes {
			if strings.ContainsRune(cube, rune(b.Letters[i])) {
				onACube = true
				break
			}
		}
		if !onACube {
			t.Errorf("letter %q at %d isn't on any cube", b.Letters[i], i)
		}
	}
}

func TestFromString(t *testing.T) {
	b, err := FromString("abcd", 2)
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if b.Letters != "ABCD" {
		t.Errorf("letters = %q, want ABCD", b.Letters)
	}

	if _, err := FromString("abc", 2); err == nil {
		t.Error("FromString with too few letters didn't fail")
	}
	if _, err := FromString("ab1d", 2); err == nil {
		t.Error("FromString with a digit didn't fail")
	}
}
