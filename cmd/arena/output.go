package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gorgonia/reversi"
	"github.com/gorgonia/reversi/game"
)

const pingInterval = 30 * time.Second

// message is what goes down the websocket. Board is seen from black: 1 for black, -1 for white.
type message struct {
	Type string `json:"type"` // "move", "end" or "ping"

	Name   string    `json:"name,omitempty"`
	Epoch  int       `json:"epoch"`
	Game   int       `json:"game"`
	Player string    `json:"player,omitempty"`
	Move   string    `json:"move,omitempty"`
	Board  []float32 `json:"board,omitempty"`
	Black  float32   `json:"black"`
	White  float32   `json:"white"`
	Winner string    `json:"winner,omitempty"`
}

// Encoder is a structure that encodes a game state according to the reversi.OutputEncoder interface.
// Every connected websocket client gets a copy of each message. Slow clients drop messages.
type Encoder struct {
	sync.Mutex
	clients map[chan []byte]struct{}

	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

var _ reversi.OutputEncoder = &Encoder{}

func NewEncoder(logger zerolog.Logger) *Encoder {
	return &Encoder{
		clients:  make(map[chan []byte]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
	}
}

func (enc *Encoder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := enc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		enc.logger.Warn().Err(err).Msg("upgrade")
		return
	}
	defer c.Close()

	send := make(chan []byte, 64)
	enc.register(send)
	defer enc.unregister(send)

	// reads only to notice the client going away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeWithHeartbeat(c, send, gone); err != nil {
		enc.logger.Debug().Err(err).Msg("write")
	}
}

// Clients returns the number of connected clients.
func (enc *Encoder) Clients() int {
	enc.Lock()
	defer enc.Unlock()
	return len(enc.clients)
}

func (enc *Encoder) register(c chan []byte) {
	enc.Lock()
	enc.clients[c] = struct{}{}
	enc.Unlock()
}

func (enc *Encoder) unregister(c chan []byte) {
	enc.Lock()
	delete(enc.clients, c)
	enc.Unlock()
}

// Encode a game
func (enc *Encoder) Encode(ms game.MetaState) error {
	g := ms.State()
	last := g.LastMove()
	msg := message{
		Type:   "move",
		Name:   ms.Name(),
		Epoch:  ms.Epoch(),
		Game:   ms.GameNumber(),
		Player: last.Player.String(),
		Move:   last.Point.String(),
		Board:  reversi.EncodeBoard(g.Board(), game.BlackPlayer, nil),
		Black:  g.Score(game.BlackPlayer),
		White:  g.Score(game.WhitePlayer),
	}
	if ended, winner := g.Ended(); ended {
		msg.Type = "end"
		msg.Winner = winner.String()
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	enc.broadcast(b)
	return nil
}

// Flush does nothing. Messages are sent as they are encoded.
func (enc *Encoder) Flush() error { return nil }

func (enc *Encoder) broadcast(b []byte) {
	enc.Lock()
	defer enc.Unlock()
	for c := range enc.clients {
		select {
		case c <- b:
		default:
			enc.logger.Debug().Msg("slow-client")
		}
	}
}

// writeWithHeartbeat writes the messages of send until the client is gone. Idle connections get a ping message.
func writeWithHeartbeat(c *websocket.Conn, send <-chan []byte, gone <-chan struct{}) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(message{Type: "ping"})

	for {
		select {
		case <-gone:
			return nil
		case b := <-send:
			if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < pingInterval {
				continue
			}
			if err := c.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
