package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bcspragu/Boggle/boggle"
	"github.com/bcspragu/Boggle/dict"
	"github.com/bcspragu/Boggle/memdb"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog"
)

func TestBasicallyEverything(t *testing.T) {
	// This is a hodge-podge test that tests out the entire flow end-to-end,
	// because this is a personal project and I don't have the wherewithal to add
	// more modular tests.
	env := setup()

	for i := 0; i < 2; i++ {
		env.createUser(t, fmt.Sprintf("Test%d", i))
	}

	// Sanity check the auth works by requesting a user's information back.
	gotUser := env.user(t, 1 /* user index 1 */)
	wantUser := &boggle.User{
		ID:   "user_1",
		Name: "Test1",
	}
	if diff := cmp.Diff(wantUser, gotUser); diff != "" {
		t.Errorf("unexpected user (-want +got)\n%s", diff)
	}

	// A tiny manual board so the whole game is predictable.
	gID := env.createGame(t, 0, "abcd", 2, 2)
	gotGame, err := env.db.Game(gID)
	if err != nil {
		t.Fatalf("failed to load game %q: %v", gID, err)
	}
	wantGame := &boggle.Game{
		ID:        "game_0",
		CreatedBy: "user_0",
		Status:    boggle.Playing,
		State: &boggle.GameState{
			Board:         &boggle.Board{Size: 2, Letters: "ABCD"},
			MinWordLength: 2,
		},
	}
	if diff := cmp.Diff(wantGame, gotGame); diff != "" {
		t.Errorf("unexpected game (-want +got)\n%s", diff)
	}

	gotOpenGames := env.openGames(t)
	wantOpenGames := []boggle.GameID{"game_0"}
	if diff := cmp.Diff(wantOpenGames, gotOpenGames); diff != "" {
		t.Errorf("unexpected open game IDs (-want +got)\n%s", diff)
	}

	// Only the creator gets to play words.
	if err := env.playWordErr(gID, 1, "ab"); err == nil {
		t.Error("a non-creator was allowed to play a word")
	}

	// Words that aren't in the dictionary bounce.
	if err := env.playWordErr(gID, 0, "zz"); err == nil {
		t.Error("a non-word was accepted")
	}

	gotPlay := env.playWord(t, gID, 0, "ab")
	wantPlay := playResp{Word: "AB", Points: 0, Score: 0}
	if diff := cmp.Diff(wantPlay, gotPlay); diff != "" {
		t.Errorf("unexpected play response (-want +got)\n%s", diff)
	}

	// The computer sweeps up everything else on the board.
	gotOutcome := env.finishGame(t, gID, 0)
	wantOutcome := outcomeResp{
		Winner:        boggle.ComputerWinner,
		HumanScore:    0,
		ComputerScore: 1,
		ComputerWords: []string{"ABD", "ABDC", "AC"},
	}
	if diff := cmp.Diff(wantOutcome, gotOutcome); diff != "" {
		t.Errorf("unexpected outcome (-want +got)\n%s", diff)
	}

	// The game is over now, no more words and no second computer turn.
	if err := env.playWordErr(gID, 0, "ac"); err == nil {
		t.Error("a word was accepted after the game finished")
	}
	if err := env.finishGameErr(gID, 0); err == nil {
		t.Error("the computer took a second turn")
	}

	gotGame = env.game(t, gID)
	if gotGame.Status != boggle.Finished {
		t.Errorf("game status = %q, want %q", gotGame.Status, boggle.Finished)
	}
	if gotGame.State.Winner != boggle.ComputerWinner {
		t.Errorf("game winner = %q, want %q", gotGame.State.Winner, boggle.ComputerWinner)
	}
}

func TestCreateGameRejectsBadSizes(t *testing.T) {
	env := setup()
	env.createUser(t, "Test0")

	for _, size := range []int{-2, 100} {
		req := struct {
			BoardSize int `json:"board_size"`
		}{size}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/game", toBody(t, req))
		env.addAuth(r, 0)

		if err := env.srv.serveCreateGame(w, r); err == nil {
			t.Errorf("board size %d was accepted", size)
		}
	}
}

func (env *testEnv) createUser(t *testing.T, name string) {
	req := struct {
		Name string `json:"name"`
	}{name}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/user", toBody(t, req))
	if err := env.srv.serveCreateUser(w, r); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "Authorization" {
			env.userAuth = append(env.userAuth, c.Value)
			found = true
		}
	}
	if !found {
		t.Fatal("no auth was provided in create user response")
	}
}

func (env *testEnv) user(t *testing.T, authIdx int) *boggle.User {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	env.addAuth(r, authIdx)

	if err := env.srv.serveUser(w, r); err != nil {
		t.Fatalf("failed to get user: %v", err)
	}

	var u boggle.User
	fromBody(t, w, &u)
	return &u
}

func (env *testEnv) createGame(t *testing.T, authIdx int, board string, size, minLen int) boggle.GameID {
	req := struct {
		Board         string `json:"board"`
		BoardSize     int    `json:"board_size"`
		MinWordLength int    `json:"min_word_length"`
	}{board, size, minLen}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/game", toBody(t, req))
	env.addAuth(r, authIdx)

	if err := env.srv.serveCreateGame(w, r); err != nil {
		t.Fatalf("failed to create game: %v", err)
	}

	var resp struct {
		ID string `json:"id"`
	}
	fromBody(t, w, &resp)
	return boggle.GameID(resp.ID)
}

func (env *testEnv) openGames(t *testing.T) []boggle.GameID {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/games", nil)

	if err := env.srv.serveOpenGames(w, r); err != nil {
		t.Fatalf("failed to get open games: %v", err)
	}

	var resp []boggle.GameID
	fromBody(t, w, &resp)
	return resp
}

func (env *testEnv) game(t *testing.T, gID boggle.GameID) *boggle.Game {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/game/"+string(gID), nil)
	r = mux.SetURLVars(r, map[string]string{"id": string(gID)})

	if err := env.srv.serveGame(w, r); err != nil {
		t.Fatalf("failed to get game: %v", err)
	}

	var g boggle.Game
	fromBody(t, w, &g)
	return &g
}

type playResp struct {
	Word   string `json:"word"`
	Points int    `json:"points"`
	Score  int    `json:"score"`
}

func (env *testEnv) playWord(t *testing.T, gID boggle.GameID, authIdx int, word string) playResp {
	w := httptest.NewRecorder()
	if err := env.playWordRaw(w, gID, authIdx, word); err != nil {
		t.Fatalf("failed to play word %q: %v", word, err)
	}

	var resp playResp
	fromBody(t, w, &resp)
	return resp
}

func (env *testEnv) playWordErr(gID boggle.GameID, authIdx int, word string) error {
	return env.playWordRaw(httptest.NewRecorder(), gID, authIdx, word)
}

func (env *testEnv) playWordRaw(w *httptest.ResponseRecorder, gID boggle.GameID, authIdx int, word string) error {
	req := struct {
		Word string `json:"word"`
	}{word}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return err
	}

	r := httptest.NewRequest(http.MethodPost, "/api/game/"+string(gID)+"/word", &buf)
	r = mux.SetURLVars(r, map[string]string{"id": string(gID)})
	env.addAuth(r, authIdx)

	handler := env.srv.requireGameAuth(env.srv.servePlayWord, isGameCreator(), isGamePlaying())
	return handler(w, r)
}

type outcomeResp struct {
	Winner        boggle.Winner `json:"winner"`
	HumanScore    int           `json:"human_score"`
	ComputerScore int           `json:"computer_score"`
	ComputerWords []string      `json:"computer_words"`
}

func (env *testEnv) finishGame(t *testing.T, gID boggle.GameID, authIdx int) outcomeResp {
	w := httptest.NewRecorder()
	if err := env.finishGameRaw(w, gID, authIdx); err != nil {
		t.Fatalf("failed to finish game: %v", err)
	}

	var resp outcomeResp
	fromBody(t, w, &resp)
	return resp
}

func (env *testEnv) finishGameErr(gID boggle.GameID, authIdx int) error {
	return env.finishGameRaw(httptest.NewRecorder(), gID, authIdx)
}

func (env *testEnv) finishGameRaw(w *httptest.ResponseRecorder, gID boggle.GameID, authIdx int) error {
	r := httptest.NewRequest(http.MethodPost, "/api/game/"+string(gID)+"/finish", nil)
	r = mux.SetURLVars(r, map[string]string{"id": string(gID)})
	env.addAuth(r, authIdx)

	handler := env.srv.requireGameAuth(env.srv.serveFinishGame, isGameCreator(), isGamePlaying())
	return handler(w, r)
}

func (env *testEnv) addAuth(r *http.Request, authIdx int) {
	r.AddCookie(&http.Cookie{
		Name:  "Authorization",
		Value: env.userAuth[authIdx],
	})
}

func toBody(t *testing.T, body interface{}) io.Reader {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	return &buf
}

func fromBody(t *testing.T, w *httptest.ResponseRecorder, resp interface{}) {
	body := w.Body.String()
	if err := json.NewDecoder(strings.NewReader(body)).Decode(resp); err != nil {
		t.Fatalf("failed to decode response body %q: %v", body, err)
	}
}

type testEnv struct {
	db       *memdb.DB
	srv      *Srv
	userAuth []string
}

func setup() *testEnv {
	db := memdb.New()
	d := dict.NewFromWords([]string{"AB", "AC", "ABD", "ABDC"})

	return &testEnv{
		db: db,
		srv: New(
			db,
			d,
			rand.New(rand.NewSource(0)),
			setupCookies(),
			zerolog.Nop(),
		),
	}
}

func setupCookies() *securecookie.SecureCookie {
	return securecookie.New(
		[]byte{
			1, 2, 3, 4, 5, 6, 7, 8,
			9, 10, 11, 12, 13, 14, 15, 16,
			17, 18, 19, 20, 21, 22, 23, 24,
			25, 26, 27, 28, 29, 30, 31, 32,
		},
		[]byte{
			33, 34, 35, 36, 37, 38, 39, 40,
			41, 42, 43, 44, 45, 46, 47, 48,
			49, 50, 51, 52, 53, 54, 55, 56,
			57, 58, 59, 60, 61, 62, 63, 64,
		})
}
