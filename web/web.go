// Package web exposes Boggle over HTTP: creating users and games, playing
// words, and triggering the computer's turn. Anyone can watch a game over a
// websocket, which also streams the cells the exhaustive search visits so
// clients can animate the computer "thinking".
package web

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/bcspragu/Boggle/boardgen"
	"github.com/bcspragu/Boggle/boggle"
	"github.com/bcspragu/Boggle/game"
	"github.com/bcspragu/Boggle/hub"
	"github.com/bcspragu/Boggle/search"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// maxBoardSize caps requested boards, a size of n allocates n*n cells.
const maxBoardSize = 16

type Srv struct {
	sc       *securecookie.SecureCookie
	h        *hub.Hub
	mux      *mux.Router
	db       boggle.DB
	dict     search.Dictionary
	r        *rand.Rand
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// New returns an initialized server.
func New(db boggle.DB, dict search.Dictionary, r *rand.Rand, sc *securecookie.SecureCookie, log zerolog.Logger) *Srv {
	s := &Srv{
		sc:   sc,
		h:    hub.New(),
		db:   db,
		dict: dict,
		r:    r,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	s.mux = s.initMux()

	return s
}

func (s *Srv) initMux() *mux.Router {
	m := mux.NewRouter()
	// New user.
	m.HandleFunc("/api/user", s.handle(s.serveCreateUser)).Methods("POST")
	// Load user.
	m.HandleFunc("/api/user", s.handle(s.serveUser)).Methods("GET")
	// New game.
	m.HandleFunc("/api/game", s.handle(s.serveCreateGame)).Methods("POST")
	// Games still accepting words.
	m.HandleFunc("/api/games", s.handle(s.serveOpenGames)).Methods("GET")
	// Get game.
	m.HandleFunc("/api/game/{id}", s.handle(s.serveGame)).Methods("GET")
	// Play a word.
	m.HandleFunc("/api/game/{id}/word", s.handle(s.requireGameAuth(s.servePlayWord, isGameCreator(), isGamePlaying()))).Methods("POST")
	// End the human turn and run the computer's exhaustive search.
	m.HandleFunc("/api/game/{id}/finish", s.handle(s.requireGameAuth(s.serveFinishGame, isGameCreator(), isGamePlaying()))).Methods("POST")

	// WebSocket handler for watching games.
	m.HandleFunc("/api/game/{id}/ws", s.handle(s.serveData)).Methods("GET")

	m.Use(s.logRequests)

	return m
}

func (s *Srv) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Srv) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("handled request")
	})
}

// httpError carries the status code and message a failed handler should
// respond with.
type httpError struct {
	code int
	msg  string
	err  error
}

func (h *httpError) Error() string {
	if h.err != nil {
		return h.err.Error()
	}
	return h.msg
}

func badRequest(format string, args ...interface{}) error {
	return &httpError{code: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// handle adapts our error-returning handlers to http.HandlerFunc, logging
// failures and mapping them to status codes.
func (s *Srv) handle(hf handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := hf(w, r)
		if err == nil {
			return
		}

		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("handler failed")

		if herr, ok := err.(*httpError); ok {
			msg := herr.msg
			if msg == "" {
				msg = http.StatusText(herr.code)
			}
			http.Error(w, msg, herr.code)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

type gameHandlerFunc func(http.ResponseWriter, *http.Request, *boggle.User, *boggle.Game) error

type authCheck func(*boggle.User, *boggle.Game) error

// requireGameAuth loads the requesting user and the game from the URL,
// applies any additional checks, and hands both to the wrapped handler.
func (s *Srv) requireGameAuth(hf gameHandlerFunc, checks ...authCheck) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		u, err := s.loadUser(r)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if u == nil {
			return &httpError{code: http.StatusUnauthorized, msg: "not logged in"}
		}

		gID := boggle.GameID(mux.Vars(r)["id"])
		g, err := s.db.Game(gID)
		if err == boggle.ErrGameNotFound {
			return &httpError{code: http.StatusNotFound, msg: fmt.Sprintf("no game %q", gID)}
		}
		if err != nil {
			return fmt.Errorf("failed to load game %q: %w", gID, err)
		}

		for _, check := range checks {
			if err := check(u, g); err != nil {
				return err
			}
		}

		return hf(w, r, u, g)
	}
}

func isGameCreator() authCheck {
	return func(u *boggle.User, g *boggle.Game) error {
		if g.CreatedBy != u.ID {
			return &httpError{code: http.StatusForbidden, msg: "only the game's creator can play it"}
		}
		return nil
	}
}

func isGamePlaying() authCheck {
	return func(_ *boggle.User, g *boggle.Game) error {
		if g.Status != boggle.Playing {
			return badRequest("game %q is already finished", g.ID)
		}
		return nil
	}
}

func (s *Srv) serveCreateUser(w http.ResponseWriter, r *http.Request) error {
	var req struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("failed to decode request: %v", err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest("no name given")
	}

	id, err := s.db.NewUser(&boggle.User{Name: name})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	encoded, err := s.sc.Encode("auth", id)
	if err != nil {
		return fmt.Errorf("failed to encode auth cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:  "Authorization",
		Value: encoded,
	})

	return jsonResp(w, struct {
		Success bool `json:"success"`
	}{true})
}

func (s *Srv) serveUser(w http.ResponseWriter, r *http.Request) error {
	u, err := s.loadUser(r)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return &httpError{code: http.StatusUnauthorized, msg: "not logged in"}
	}

	return jsonResp(w, u)
}

func (s *Srv) serveCreateGame(w http.ResponseWriter, r *http.Request) error {
	u, err := s.loadUser(r)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if u == nil {
		return &httpError{code: http.StatusUnauthorized, msg: "not logged in"}
	}

	var req struct {
		// Board is an optional flat string of letters for a manual board.
		Board string `json:"board"`
		// BoardSize is the board's width, defaulting to 4.
		BoardSize int `json:"board_size"`
		// MinWordLength defaults to 4.
		MinWordLength int `json:"min_word_length"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("failed to decode request: %v", err)
	}

	size := req.BoardSize
	if size == 0 {
		size = boggle.DefaultBoardSize
	}
	if size < 1 || size > maxBoardSize {
		return badRequest("board size must be between 1 and %d, got %d", maxBoardSize, size)
	}
	minLen := req.MinWordLength
	if minLen == 0 {
		minLen = boggle.DefaultMinWordLength
	}
	if minLen < 1 {
		return badRequest("minimum word length must be positive, got %d", minLen)
	}

	var b *boggle.Board
	if req.Board != "" {
		if b, err = boardgen.FromString(req.Board, size); err != nil {
			return badRequest("invalid board: %v", err)
		}
	} else {
		b = boardgen.New(size, s.r)
	}

	g, err := game.New(b, minLen, &game.Config{Dict: s.dict})
	if err != nil {
		return badRequest("invalid game: %v", err)
	}

	id, err := s.db.NewGame(&boggle.Game{
		CreatedBy: u.ID,
		State:     g.State(),
	})
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return jsonResp(w, struct {
		ID string `json:"id"`
	}{string(id)})
}

func (s *Srv) serveOpenGames(w http.ResponseWriter, r *http.Request) error {
	gIDs, err := s.db.OpenGames()
	if err != nil {
		return fmt.Errorf("failed to load open games: %w", err)
	}

	return jsonResp(w, gIDs)
}

func (s *Srv) serveGame(w http.ResponseWriter, r *http.Request) error {
	gID := boggle.GameID(mux.Vars(r)["id"])
	g, err := s.db.Game(gID)
	if err == boggle.ErrGameNotFound {
		return &httpError{code: http.StatusNotFound, msg: fmt.Sprintf("no game %q", gID)}
	}
	if err != nil {
		return fmt.Errorf("failed to load game %q: %w", gID, err)
	}

	return jsonResp(w, g)
}

func (s *Srv) servePlayWord(w http.ResponseWriter, r *http.Request, u *boggle.User, g *boggle.Game) error {
	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("failed to decode request: %v", err)
	}

	gm := game.NewForMove(g.State, &game.Config{Dict: s.dict})
	res, err := gm.PlayWord(req.Word)
	if err != nil {
		return badRequest("%v", err)
	}

	if err := s.db.UpdateState(g.ID, gm.State()); err != nil {
		return fmt.Errorf("failed to update game %q: %w", g.ID, err)
	}

	// Watchers get the new state, the player's own sockets also get the
	// word ack.
	if err := s.h.ToUser(g.ID, u.ID, playedMsg{Type: "word", Word: res.Word, Points: res.Points}); err != nil {
		s.log.Error().Err(err).Str("game_id", string(g.ID)).Msg("failed to send word ack")
	}
	s.broadcastState(g.ID)

	return jsonResp(w, struct {
		Word   string `json:"word"`
		Points int    `json:"points"`
		Score  int    `json:"score"`
	}{res.Word, res.Points, res.Score})
}

func (s *Srv) serveFinishGame(w http.ResponseWriter, r *http.Request, u *boggle.User, g *boggle.Game) error {
	gm := game.NewForMove(g.State, &game.Config{
		Dict: s.dict,
		// Stream every cell the search commits to, so watchers can
		// animate the computer's turn.
		VisitFunc: func(p boggle.Position) {
			_ = s.h.ToGame(g.ID, visitMsg{Type: "visit", Position: p})
		},
	})

	out, err := gm.FinishTurn()
	if err != nil {
		return badRequest("%v", err)
	}

	if err := s.db.UpdateState(g.ID, gm.State()); err != nil {
		return fmt.Errorf("failed to update game %q: %w", g.ID, err)
	}

	s.broadcastState(g.ID)

	return jsonResp(w, struct {
		Winner        boggle.Winner `json:"winner"`
		HumanScore    int           `json:"human_score"`
		ComputerScore int           `json:"computer_score"`
		ComputerWords []string      `json:"computer_words"`
	}{out.Winner, out.HumanScore, out.ComputerScore, out.ComputerWords})
}

func (s *Srv) serveData(w http.ResponseWriter, r *http.Request) error {
	gID := boggle.GameID(mux.Vars(r)["id"])
	if _, err := s.db.Game(gID); err == boggle.ErrGameNotFound {
		return &httpError{code: http.StatusNotFound, msg: fmt.Sprintf("no game %q", gID)}
	} else if err != nil {
		return fmt.Errorf("failed to load game %q: %w", gID, err)
	}

	// Watching doesn't require being logged in.
	var uID boggle.UserID
	if u, err := s.loadUser(r); err == nil && u != nil {
		uID = u.ID
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}
	s.h.Register(ws, gID, uID)

	return nil
}

type playedMsg struct {
	Type   string `json:"type"`
	Word   string `json:"word"`
	Points int    `json:"points"`
}

type visitMsg struct {
	Type     string          `json:"type"`
	Position boggle.Position `json:"position"`
}

type stateMsg struct {
	Type string       `json:"type"`
	Game *boggle.Game `json:"game"`
}

func (s *Srv) broadcastState(gID boggle.GameID) {
	g, err := s.db.Game(gID)
	if err != nil {
		s.log.Error().Err(err).Str("game_id", string(gID)).Msg("failed to load game for broadcast")
		return
	}
	if err := s.h.ToGame(gID, stateMsg{Type: "state", Game: g}); err != nil {
		s.log.Error().Err(err).Str("game_id", string(gID)).Msg("failed to broadcast state")
	}
}

func jsonResp(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}

func (s *Srv) loadUser(r *http.Request) (*boggle.User, error) {
	c, err := r.Cookie("Authorization")
	if err == http.ErrNoCookie {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var uID boggle.UserID
	if err := s.sc.Decode("auth", c.Value, &uID); err != nil {
		// If we can't parse it, assume it's an old auth cookie and treat them as
		// not logged in.
		return nil, nil
	}

	u, err := s.db.User(uID)
	if err == boggle.ErrUserNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return u, nil
}
