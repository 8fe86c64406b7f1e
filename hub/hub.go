// Package hub fans websocket messages out to everyone watching a game. The
// web layer uses it to stream game state changes and, during the computer's
// turn, the cells the search is visiting.
package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/bcspragu/Boggle/boggle"
	"github.com/gorilla/websocket"
)

// Hub maintains the set of active connections and broadcasts messages to the
// connections.
type Hub struct {
	// Registered connections.
	connections map[boggle.GameID][]*connection

	// Messages to send to everyone watching a game.
	broadcast chan *broadcastMsg

	// Messages to send to a single person in a game.
	user chan *userMsg

	// Register requests from the connections.
	register chan *connection

	// Unregister requests from connections.
	unregister chan *connection
}

// New creates a new Hub and starts it in a background Go routine.
func New() *Hub {
	h := &Hub{
		broadcast:   make(chan *broadcastMsg),
		user:        make(chan *userMsg),
		register:    make(chan *connection),
		unregister:  make(chan *connection),
		connections: make(map[boggle.GameID][]*connection),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			conns := h.connections[c.gameID]
			h.connections[c.gameID] = append(conns, c)
		case c := <-h.unregister:
			h.deleteConn(c)
		case m := <-h.broadcast:
			h.sendToGame(m)
		case m := <-h.user:
			h.sendToUser(m)
		}
	}
}

// sendToGame queues the message on every connection watching the game.
// Connections too backed up to take it get dropped, after the loop, since
// deleteConn reshuffles the slice being ranged over.
func (h *Hub) sendToGame(m *broadcastMsg) {
	var doomed []*connection
	for _, c := range h.connections[m.gameID] {
		select {
		case c.send <- m.msg:
		default:
			doomed = append(doomed, c)
		}
	}
	for _, c := range doomed {
		h.deleteConn(c)
	}
}

// sendToUser is sendToGame for just one user's connections.
func (h *Hub) sendToUser(m *userMsg) {
	var doomed []*connection
	for _, c := range h.connections[m.gameID] {
		if c.userID != m.userID {
			continue
		}
		select {
		case c.send <- m.msg:
		default:
			doomed = append(doomed, c)
		}
	}
	for _, c := range doomed {
		h.deleteConn(c)
	}
}

func (h *Hub) deleteConn(c *connection) {
	close(c.send)
	rconns := h.connections[c.gameID]
	for i, rconn := range rconns {
		if rconn.id == c.id {
			// Remove the connection.
			copy(rconns[i:], rconns[i+1:])
			rconns[len(rconns)-1] = nil
			h.connections[c.gameID] = rconns[:len(rconns)-1]
			return
		}
	}
}

type broadcastMsg struct {
	gameID boggle.GameID
	msg    []byte
}

// ToGame sends a message to everyone watching a game.
func (h *Hub) ToGame(gID boggle.GameID, msg interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	h.broadcast <- &broadcastMsg{
		gameID: gID,
		msg:    buf.Bytes(),
	}

	return nil
}

type userMsg struct {
	gameID boggle.GameID
	userID boggle.UserID
	msg    []byte
}

func (h *Hub) ToUser(gID boggle.GameID, uID boggle.UserID, msg interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	h.user <- &userMsg{
		gameID: gID,
		userID: uID,
		msg:    buf.Bytes(),
	}

	return nil
}

// Register associates a connection with the hub and a given game.
func (h *Hub) Register(ws *websocket.Conn, gID boggle.GameID, uID boggle.UserID) {
	conn := &connection{
		id:     newID(gID),
		h:      h,
		gameID: gID,
		userID: uID,
		send:   make(chan []byte, 256),
		ws:     ws,
	}
	h.register <- conn
	go conn.writePump()
	go conn.readPump()
}

func newID(gID boggle.GameID) string {
	return fmt.Sprintf("%s-%d", gID, rand.Int63())
}
