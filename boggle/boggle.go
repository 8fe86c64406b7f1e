package boggle

import "fmt"

const (
	// DefaultBoardSize is the width and height of a standard Boggle board.
	DefaultBoardSize = 4
	// DefaultMinWordLength is the shortest word that scores in standard
	// Boggle.
	DefaultMinWordLength = 4
)

// Position is a single cell on a board, zero-indexed from the top-left.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// In returns whether the position is on a board of the given size.
func (p Position) In(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Board is a square grid of uppercase letters. The zeroth letter is the
// top-left cell, the (Size-1)th is the top-right, and the last is the
// bottom-right. Letters is immutable, word searches track cell usage in
// their own scratch structures.
type Board struct {
	Size    int    `json:"size"`
	Letters string `json:"letters"`
}

// NewBoard validates a flat row-major string of letters as a size x size
// board. Lowercase input is accepted and normalized.
func NewBoard(letters string, size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("board size must be positive, got %d", size)
	}
	if len(letters) != size*size {
		return nil, fmt.Errorf("board must contain %d letters, found %d", size*size, len(letters))
	}

	up := make([]byte, len(letters))
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("invalid board letter %q at index %d", letters[i], i)
		}
		up[i] = c
	}

	return &Board{Size: size, Letters: string(up)}, nil
}

// At returns the letter at the given position. The position must be on the
// board.
func (b *Board) At(p Position) byte {
	return b.Letters[p.Row*b.Size+p.Col]
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	return &Board{Size: b.Size, Letters: b.Letters}
}

// String formats the board as one row of letters per line.
func (b *Board) String() string {
	var out []byte
	for r := 0; r < b.Size; r++ {
		out = append(out, b.Letters[r*b.Size:(r+1)*b.Size]...)
		out = append(out, '\n')
	}
	return string(out)
}

// Points returns the score a found word is worth, using the standard Boggle
// table. Words below four letters are worth nothing, but whether they're
// playable at all is the game's minimum-length policy, not ours.
func Points(word string) int {
	switch n := len(word); {
	case n < 4:
		return 0
	case n == 4:
		return 1
	case n == 5:
		return 2
	case n == 6:
		return 3
	case n == 7:
		return 5
	default:
		return 11
	}
}

// Score sums the points of every word in the list.
func Score(words []string) int {
	total := 0
	for _, w := range words {
		total += Points(w)
	}
	return total
}
