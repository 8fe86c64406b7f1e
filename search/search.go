// Package search implements the word-finding core of Boggle: verifying that
// a single word can be traced on a board, and exhaustively enumerating every
// dictionary word a board contains.
//
// Both searches are recursive backtracking over the same adjacency model:
// every cell touches its up-to-eight surrounding cells, and a cell can appear
// at most once on the path spelling a word. Cell usage is tracked in a
// scratch mask owned by the search, so the caller's board is never modified.
package search

import (
	"sort"

	"github.com/bcspragu/Boggle/boggle"
)

// Dictionary is the word list consulted by FindAll. ContainsPrefix is what
// makes exhaustive search tractable, branches that can't lead to any word
// are cut immediately.
type Dictionary interface {
	Contains(word string) bool
	ContainsPrefix(prefix string) bool
}

type options struct {
	visit func(boggle.Position)
}

// Option configures a search.
type Option func(*options)

// WithVisitFunc registers a callback invoked synchronously for every cell a
// search commits to its current path. It exists for UIs that want to show
// the search in progress, the search never depends on it.
func WithVisitFunc(f func(boggle.Position)) Option {
	return func(o *options) {
		o.visit = f
	}
}

// searcher holds the scratch state for one top-level search over a board.
type searcher struct {
	board *boggle.Board
	used  []bool
	visit func(boggle.Position)
}

func newSearcher(b *boggle.Board, opts []Option) *searcher {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &searcher{
		board: b,
		used:  make([]bool, b.Size*b.Size),
		visit: o.visit,
	}
}

func (s *searcher) mark(p boggle.Position) {
	s.used[p.Row*s.board.Size+p.Col] = true
	if s.visit != nil {
		s.visit(p)
	}
}

func (s *searcher) unmark(p boggle.Position) {
	s.used[p.Row*s.board.Size+p.Col] = false
}

func (s *searcher) isUsed(p boggle.Position) bool {
	return s.used[p.Row*s.board.Size+p.Col]
}

// neighbors appends the up-to-eight in-bounds cells around p to buf,
// in row-major offset order. The fixed order keeps search traces
// deterministic.
func neighbors(size int, p boggle.Position, buf []boggle.Position) []boggle.Position {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := boggle.Position{Row: p.Row + dr, Col: p.Col + dc}
			if n.In(size) {
				buf = append(buf, n)
			}
		}
	}
	return buf
}

// Verify reports whether word can be spelled by a simple path of adjacent
// cells on the board, using no cell more than once. It applies no
// minimum-length policy, a one-letter word is verified like any other.
//
// The word must be non-empty and uppercase like the board's letters, that's
// the caller's contract. Verify panics on an empty word rather than guess at
// an answer.
func Verify(b *boggle.Board, word string, opts ...Option) bool {
	_, ok := tracePath(b, word, opts)
	return ok
}

// Trace is Verify, except it also returns the cells of the path it found, in
// spelling order. When several paths spell the word, the first one reached in
// scan order wins.
func Trace(b *boggle.Board, word string, opts ...Option) ([]boggle.Position, bool) {
	return tracePath(b, word, opts)
}

func tracePath(b *boggle.Board, word string, opts []Option) ([]boggle.Position, bool) {
	if word == "" {
		panic("search: can't search for an empty word")
	}

	s := newSearcher(b, opts)
	path := make([]boggle.Position, 0, len(word))
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			p := boggle.Position{Row: row, Col: col}
			if b.At(p) != word[0] {
				continue
			}
			if found, ok := s.extend(p, word, 1, path); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// extend tries to spell word[matched:] outward from p, which is already
// known to match word[matched-1]. It marks p on entry and unmarks it on
// every exit, success included, so the mask is clean for sibling branches
// and for the next top-level call.
func (s *searcher) extend(p boggle.Position, word string, matched int, path []boggle.Position) ([]boggle.Position, bool) {
	s.mark(p)
	defer s.unmark(p)

	path = append(path, p)
	if matched == len(word) {
		return path, true
	}

	var buf [8]boggle.Position
	for _, n := range neighbors(s.board.Size, p, buf[:0]) {
		if s.isUsed(n) || s.board.At(n) != word[matched] {
			continue
		}
		if found, ok := s.extend(n, word, matched+1, path); ok {
			return found, true
		}
	}
	return nil, false
}

// FindAll enumerates every word in the dictionary that can be traced on the
// board, is at least minLength letters long, and isn't in exclusions. The
// result is duplicate-free and sorted, a word reachable by many paths or
// from many starting cells appears once.
//
// The board is left exactly as it was given, and calling FindAll again with
// the same inputs returns the same words.
func FindAll(b *boggle.Board, dict Dictionary, exclusions map[string]struct{}, minLength int, opts ...Option) []string {
	f := &finder{
		searcher:   newSearcher(b, opts),
		dict:       dict,
		exclusions: exclusions,
		minLength:  minLength,
		found:      make(map[string]struct{}),
	}

	prefix := make([]byte, 0, b.Size*b.Size)
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			f.explore(boggle.Position{Row: row, Col: col}, prefix)
		}
	}

	words := make([]string, 0, len(f.found))
	for w := range f.found {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

type finder struct {
	*searcher
	dict       Dictionary
	exclusions map[string]struct{}
	minLength  int
	found      map[string]struct{}
}

// explore extends the path onto p, records the spelled word if it's a
// scorable dictionary word, and keeps going: a complete word is often the
// prefix of a longer one. Only extensions that are still the prefix of some
// dictionary word are followed.
func (f *finder) explore(p boggle.Position, prefix []byte) {
	f.mark(p)
	defer f.unmark(p)

	prefix = append(prefix, f.board.At(p))
	word := string(prefix)

	if len(word) >= f.minLength && f.dict.Contains(word) {
		if _, excluded := f.exclusions[word]; !excluded {
			f.found[word] = struct{}{}
		}
	}

	if !f.dict.ContainsPrefix(word) {
		return
	}

	var buf [8]boggle.Position
	for _, n := range neighbors(f.board.Size, p, buf[:0]) {
		if f.isUsed(n) {
			continue
		}
		if !f.dict.ContainsPrefix(word + string(f.board.At(n))) {
			continue
		}
		f.explore(n, prefix)
	}
}
