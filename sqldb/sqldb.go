// Package sqldb implements the Boggle database API, backed by a SQLite
// database.
package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/bcspragu/Boggle/boggle"

	_ "github.com/mattn/go-sqlite3"
)

// DB persists games and users on disk.
// NOTE: Since the database doesn't support concurrent writers, we don't
// actually hold the *sql.DB in this struct, we force all callers to get a
// handle via channels.
type DB struct {
	dbChan   chan func(*sql.DB)
	doneChan chan struct{}
	r        *rand.Rand
}

const schema = `
CREATE TABLE IF NOT EXISTS Users (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS Games (
	id TEXT PRIMARY KEY,
	created_by TEXT NOT NULL,
	status TEXT NOT NULL,
	state BLOB NOT NULL,
	FOREIGN KEY(created_by) REFERENCES Users(id)
);
`

// New creates a new *DB that is stored on disk at the given filename.
func New(fn string, r *rand.Rand) (*DB, error) {
	sdb, err := sql.Open("sqlite3", fn)
	if err != nil {
		return nil, err
	}

	if _, err := sdb.Exec(schema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	db := &DB{
		dbChan:   make(chan func(*sql.DB)),
		doneChan: make(chan struct{}),
		r:        r,
	}
	go db.run(sdb)
	return db, nil
}

// run handles all database calls, and ensures that only one thing is
// happening against the database at a time.
func (s *DB) run(sdb *sql.DB) {
	for {
		select {
		case dbFn := <-s.dbChan:
			dbFn(sdb)
		case <-s.doneChan:
			sdb.Close()
			return
		}
	}
}

func (s *DB) Close() error {
	close(s.doneChan)
	return nil
}

func (s *DB) NewUser(u *boggle.User) (boggle.UserID, error) {
	type result struct {
		id  boggle.UserID
		err error
	}
	resChan := make(chan result)

	s.dbChan <- func(sdb *sql.DB) {
		uID := boggle.RandomUserID(s.r)
		_, err := sdb.Exec("INSERT INTO Users (id, name) VALUES (?, ?)", string(uID), u.Name)
		resChan <- result{id: uID, err: err}
	}

	res := <-resChan
	if res.err != nil {
		return boggle.UserID(""), fmt.Errorf("failed to create user: %v", res.err)
	}
	return res.id, nil
}

func (s *DB) User(uID boggle.UserID) (*boggle.User, error) {
	type result struct {
		user *boggle.User
		err  error
	}
	resChan := make(chan result)

	s.dbChan <- func(sdb *sql.DB) {
		u := &boggle.User{ID: uID}
		err := sdb.QueryRow("SELECT name FROM Users WHERE id = ?", string(uID)).Scan(&u.Name)
		if err == sql.ErrNoRows {
			resChan <- result{err: boggle.ErrUserNotFound}
			return
		}
		resChan <- result{user: u, err: err}
	}

	res := <-resChan
	if res.err != nil {
		return nil, res.err
	}
	return res.user, nil
}

func (s *DB) NewGame(g *boggle.Game) (boggle.GameID, error) {
	type result struct {
		id  boggle.GameID
		err error
	}
	resChan := make(chan result)

	s.dbChan <- func(sdb *sql.DB) {
		gID := boggle.RandomGameID(s.r)
		dat, err := json.Marshal(g.State)
		if err != nil {
			resChan <- result{err: err}
			return
		}
		_, err = sdb.Exec(
			"INSERT INTO Games (id, created_by, status, state) VALUES (?, ?, ?, ?)",
			string(gID), string(g.CreatedBy), string(boggle.Playing), dat)
		resChan <- result{id: gID, err: err}
	}

	res := <-resChan
	if res.err != nil {
		return boggle.GameID(""), fmt.Errorf("failed to create game: %v", res.err)
	}
	return res.id, nil
}

func (s *DB) Game(gID boggle.GameID) (*boggle.Game, error) {
	type result struct {
		game *boggle.Game
		err  error
	}
	resChan := make(chan result)

	s.dbChan <- func(sdb *sql.DB) {
		var (
			createdBy string
			status    string
			dat       []byte
		)
		err := sdb.QueryRow("SELECT created_by, status, state FROM Games WHERE id = ?", string(gID)).
			Scan(&createdBy, &status, &dat)
		if err == sql.ErrNoRows {
			resChan <- result{err: boggle.ErrGameNotFound}
			return
		}
		if err != nil {
			resChan <- result{err: err}
			return
		}

		var state boggle.GameState
		if err := json.Unmarshal(dat, &state); err != nil {
			resChan <- result{err: fmt.Errorf("failed to unmarshal state for game %q: %v", gID, err)}
			return
		}

		resChan <- result{game: &boggle.Game{
			ID:        gID,
			CreatedBy: boggle.UserID(createdBy),
			Status:    boggle.GameStatus(status),
			State:     &state,
		}}
	}

	res := <-resChan
	if res.err != nil {
		return nil, res.err
	}
	return res.game, nil
}

func (s *DB) OpenGames() ([]boggle.GameID, error) {
	type result struct {
		ids []boggle.GameID
		err error
	}
	resChan := make(chan result)

	s.dbChan <- func(sdb *sql.DB) {
		rows, err := sdb.Query("SELECT id FROM Games WHERE status = ?", string(boggle.Playing))
		if err != nil {
			resChan <- result{err: err}
			return
		}
		defer rows.Close()

		var ids []boggle.GameID
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				resChan <- result{err: err}
				return
			}
			ids = append(ids, boggle.GameID(id))
		}
		resChan <- result{ids: ids, err: rows.Err()}
	}

	res := <-resChan
	if res.err != nil {
		return nil, res.err
	}
	return res.ids, nil
}

func (s *DB) UpdateState(gID boggle.GameID, gs *boggle.GameState) error {
	resChan := make(chan error)

	s.dbChan <- func(sdb *sql.DB) {
		dat, err := json.Marshal(gs)
		if err != nil {
			resChan <- err
			return
		}

		status := boggle.Playing
		if gs.Winner != boggle.NoWinner {
			status = boggle.Finished
		}

		sqlRes, err := sdb.Exec(
			"UPDATE Games SET status = ?, state = ? WHERE id = ?",
			string(status), dat, string(gID))
		if err != nil {
			resChan <- err
			return
		}
		n, err := sqlRes.RowsAffected()
		if err != nil {
			resChan <- err
			return
		}
		if n == 0 {
			resChan <- boggle.ErrGameNotFound
			return
		}
		resChan <- nil
	}

	return <-resChan
}
