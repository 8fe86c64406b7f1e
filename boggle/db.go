package boggle

import (
	"errors"
	"math/rand"
)

var (
	ErrUserNotFound = errors.New("boggle: user not found")
	ErrGameNotFound = errors.New("boggle: game not found")
)

type UserID string
type GameID string

type GameStatus string

const (
	// NoStatus is an error case.
	NoStatus = GameStatus("")
	// Playing means the human is still entering words. A Boggle game
	// accepts words as soon as it's created.
	Playing = GameStatus("PLAYING")
	// Finished means the computer has taken its turn and the scores are
	// final.
	Finished = GameStatus("FINISHED")
)

// Winner says who came out ahead once a game is finished.
type Winner string

const (
	NoWinner       = Winner("")
	HumanWinner    = Winner("HUMAN")
	ComputerWinner = Winner("COMPUTER")
	DrawWinner     = Winner("DRAW")
)

type User struct {
	ID UserID `json:"id"`
	// Name is the name that gets displayed.
	Name string `json:"name"`
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	uc := *u
	return &uc
}

type Game struct {
	ID        GameID     `json:"id"`
	CreatedBy UserID     `json:"created_by"`
	Status    GameStatus `json:"status"`
	State     *GameState `json:"state"`
}

func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	return &Game{
		ID:        g.ID,
		CreatedBy: g.CreatedBy,
		Status:    g.Status,
		State:     g.State.Clone(),
	}
}

// GameState is everything that changes over the course of a game.
type GameState struct {
	Board         *Board   `json:"board"`
	MinWordLength int      `json:"min_word_length"`
	HumanWords    []string `json:"human_words"`
	HumanScore    int      `json:"human_score"`
	ComputerWords []string `json:"computer_words"`
	ComputerScore int      `json:"computer_score"`
	Winner        Winner   `json:"winner,omitempty"`
}

func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	return &GameState{
		Board:         gs.Board.Clone(),
		MinWordLength: gs.MinWordLength,
		HumanWords:    append([]string(nil), gs.HumanWords...),
		HumanScore:    gs.HumanScore,
		ComputerWords: append([]string(nil), gs.ComputerWords...),
		ComputerScore: gs.ComputerScore,
		Winner:        gs.Winner,
	}
}

// DB is the storage layer for games and the users playing them.
type DB interface {
	NewUser(*User) (UserID, error)
	User(UserID) (*User, error)

	NewGame(*Game) (GameID, error)
	Game(GameID) (*Game, error)
	OpenGames() ([]GameID, error)
	UpdateState(GameID, *GameState) error
}

var letters = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func RandomUserID(r *rand.Rand) UserID {
	b := make([]byte, 64)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return UserID(b)
}

func RandomGameID(r *rand.Rand) GameID {
	b := make([]byte, 16)
	for i := range b {
		b[i] = letters[r.Intn(len(letters))]
	}
	return GameID(b)
}
