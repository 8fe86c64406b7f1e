// Package memdb is an in-memory implementation of the boggle.DB interface,
// used by tests and the local console game.
package memdb

import (
	"fmt"
	"sync"

	"github.com/bcspragu/Boggle/boggle"
)

type idNamespace string

const (
	gameID = idNamespace("game")
	userID = idNamespace("user")
)

type DB struct {
	mu    sync.Mutex
	ids   map[idNamespace]int
	games map[boggle.GameID]*boggle.Game
	users map[boggle.UserID]*boggle.User
}

func New() *DB {
	return &DB{
		ids:   make(map[idNamespace]int),
		games: make(map[boggle.GameID]*boggle.Game),
		users: make(map[boggle.UserID]*boggle.User),
	}
}

func (db *DB) NewGame(g *boggle.Game) (boggle.GameID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	gID := boggle.GameID(db.newID(gameID))

	gc := g.Clone()
	gc.ID = gID
	gc.Status = boggle.Playing
	db.games[gID] = gc

	return gID, nil
}

func (db *DB) Game(gID boggle.GameID) (*boggle.Game, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.games[gID]
	if !ok {
		return nil, boggle.ErrGameNotFound
	}

	return g.Clone(), nil
}

func (db *DB) NewUser(u *boggle.User) (boggle.UserID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	uID := boggle.UserID(db.newID(userID))

	uc := u.Clone()
	uc.ID = uID
	db.users[uID] = uc

	return uID, nil
}

func (db *DB) User(uID boggle.UserID) (*boggle.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.users[uID]
	if !ok {
		return nil, boggle.ErrUserNotFound
	}

	return u.Clone(), nil
}

func (db *DB) OpenGames() ([]boggle.GameID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var open []boggle.GameID
	for _, g := range db.games {
		if g.Status == boggle.Playing {
			open = append(open, g.ID)
		}
	}
	return open, nil
}

func (db *DB) UpdateState(gID boggle.GameID, gs *boggle.GameState) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.games[gID]
	if !ok {
		return boggle.ErrGameNotFound
	}
	g.State = gs.Clone()
	if gs.Winner != boggle.NoWinner {
		g.Status = boggle.Finished
	}
	return nil
}

func (db *DB) newID(ns idNamespace) string {
	idx := db.ids[ns]
	id := fmt.Sprintf("%s_%d", ns, idx)
	db.ids[ns]++
	return id
}
