package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bcspragu/Boggle/boggle"
	"github.com/bcspragu/Boggle/search"
)

// Game represents one round of Boggle: the human plays words until they run
// out, then the computer sweeps the board for everything they missed. It
// supports two modes of operation:
// - Local mode: construct with New and drive it to completion in-process.
// - Move mode: construct with NewForMove around stored state, apply a single
// PlayWord or FinishTurn, and persist the state again. This is what the web
// layer does per request.
type Game struct {
	state *boggle.GameState
	cfg   *Config
}

// Config holds the pieces of a game that aren't part of its stored state.
type Config struct {
	// Dict is the word list both players are held to.
	Dict search.Dictionary
	// VisitFunc, if set, is handed to the searches so callers can watch
	// the path being explored. Purely cosmetic.
	VisitFunc func(boggle.Position)
}

// New validates and initializes a game of Boggle on the given board.
func New(b *boggle.Board, minWordLength int, cfg *Config) (*Game, error) {
	if b == nil {
		return nil, errors.New("no board given")
	}
	if len(b.Letters) != b.Size*b.Size {
		return nil, fmt.Errorf("board claims %d cells but holds %d letters", b.Size*b.Size, len(b.Letters))
	}
	if minWordLength < 1 {
		return nil, fmt.Errorf("minimum word length must be positive, got %d", minWordLength)
	}
	if cfg == nil || cfg.Dict == nil {
		return nil, errors.New("no dictionary given")
	}

	return &Game{
		state: &boggle.GameState{
			Board:         b,
			MinWordLength: minWordLength,
		},
		cfg: cfg,
	}, nil
}

// NewForMove wraps existing state so a single move can be applied to it.
func NewForMove(state *boggle.GameState, cfg *Config) *Game {
	return &Game{state: state, cfg: cfg}
}

// State returns the game's current state.
func (g *Game) State() *boggle.GameState {
	return g.state
}

// Finished reports whether the computer has already taken its turn.
func (g *Game) Finished() bool {
	return g.state.Winner != boggle.NoWinner
}

// PlayResult is what the human gets back for a successfully played word.
type PlayResult struct {
	Word   string
	Points int
	Score  int
}

// PlayWord applies one human word to the game. The word is case-normalized
// here, everything else about it is checked: length, dictionary membership,
// novelty, and whether it can actually be traced on the board.
func (g *Game) PlayWord(word string) (*PlayResult, error) {
	if g.Finished() {
		return nil, errors.New("the game is over")
	}

	word = strings.ToUpper(strings.TrimSpace(word))
	if word == "" {
		return nil, errors.New("no word given")
	}
	if len(word) < g.state.MinWordLength {
		return nil, fmt.Errorf("%q is too short, words must have at least %d letters", word, g.state.MinWordLength)
	}
	if !g.cfg.Dict.Contains(word) {
		return nil, fmt.Errorf("%q is not in the dictionary", word)
	}
	for _, found := range g.state.HumanWords {
		if found == word {
			return nil, fmt.Errorf("%q has already been found", word)
		}
	}
	if !search.Verify(g.state.Board, word, g.searchOpts()...) {
		return nil, fmt.Errorf("%q can't be formed on this board", word)
	}

	g.state.HumanWords = append(g.state.HumanWords, word)
	g.state.HumanScore += boggle.Points(word)

	return &PlayResult{
		Word:   word,
		Points: boggle.Points(word),
		Score:  g.state.HumanScore,
	}, nil
}

// Outcome is the final tally after the computer's turn.
type Outcome struct {
	Winner        boggle.Winner
	HumanScore    int
	ComputerScore int
	ComputerWords []string
}

// FinishTurn ends the human's turn: the computer exhaustively finds every
// remaining dictionary word on the board, the game is marked finished, and
// the outcome is returned. Calling it twice is an error.
func (g *Game) FinishTurn() (*Outcome, error) {
	if g.Finished() {
		return nil, errors.New("the game is over")
	}

	exclusions := make(map[string]struct{}, len(g.state.HumanWords))
	for _, w := range g.state.HumanWords {
		exclusions[w] = struct{}{}
	}

	words := search.FindAll(g.state.Board, g.cfg.Dict, exclusions, g.state.MinWordLength, g.searchOpts()...)

	g.state.ComputerWords = words
	g.state.ComputerScore = boggle.Score(words)
	g.state.Winner = winner(g.state.HumanScore, g.state.ComputerScore)

	return &Outcome{
		Winner:        g.state.Winner,
		HumanScore:    g.state.HumanScore,
		ComputerScore: g.state.ComputerScore,
		ComputerWords: words,
	}, nil
}

// HumanWords returns the human's found words in alphabetical order.
func (g *Game) HumanWords() []string {
	words := append([]string(nil), g.state.HumanWords...)
	sort.Strings(words)
	return words
}

func (g *Game) searchOpts() []search.Option {
	if g.cfg.VisitFunc == nil {
		return nil
	}
	return []search.Option{search.WithVisitFunc(g.cfg.VisitFunc)}
}

func winner(human, computer int) boggle.Winner {
	switch {
	case computer > human:
		return boggle.ComputerWinner
	case human > computer:
		return boggle.HumanWinner
	default:
		return boggle.DrawWinner
	}
}
