package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/scrabble-director/metrics"
	"github.com/Dosada05/scrabble-director/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// MessageSnapshot is the type of every message carrying a full tournament.
const MessageSnapshot = "SNAPSHOT"

// AllRooms is the room of clients that follow whatever tournament is open.
const AllRooms = ""

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	RoomID  string      `json:"room_id,omitempty"`
}

type outbound struct {
	room string
	data []byte
}

// Hub fans snapshots out to console clients. Clients join a room named after
// a tournament id, or AllRooms. All client bookkeeping happens on the Run
// goroutine.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}

	rooms map[string]map[*Client]struct{}
	last  map[string][]byte

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound),
		done:       make(chan struct{}),
		rooms:      make(map[string]map[*Client]struct{}),
		last:       make(map[string][]byte),
		logger:     logger,
	}
}

// RoomFor returns the room name of a tournament.
func RoomFor(tournamentID int) string {
	return strconv.Itoa(tournamentID)
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for room, clients := range h.rooms {
			for c := range clients {
				h.drop(room, c)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			if h.rooms[c.room] == nil {
				h.rooms[c.room] = make(map[*Client]struct{})
			}
			h.rooms[c.room][c] = struct{}{}
			metrics.ConsoleClients.Inc()
			h.logger.Debug("console client registered",
				slog.String("room", c.room),
				slog.Int("clients", len(h.rooms[c.room])),
			)
			if data, ok := h.last[c.room]; ok {
				c.send <- data
			}

		case c := <-h.unregister:
			if _, ok := h.rooms[c.room][c]; ok {
				h.drop(c.room, c)
			}

		case msg := <-h.broadcast:
			h.last[msg.room] = msg.data
			h.last[AllRooms] = msg.data
			h.fanout(msg.room, msg.data)
			if msg.room != AllRooms {
				h.fanout(AllRooms, msg.data)
			}
		}
	}
}

func (h *Hub) fanout(room string, data []byte) {
	for c := range h.rooms[room] {
		select {
		case c.send <- data:
		default:
			// Клиент не успевает читать, отключаем его.
			h.logger.Warn("console client too slow, dropping", slog.String("room", room))
			h.drop(room, c)
		}
	}
}

func (h *Hub) drop(room string, c *Client) {
	delete(h.rooms[room], c)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
	close(c.send)
	metrics.ConsoleClients.Dec()
}

// Publish sends t to the tournament's room and to AllRooms. It returns false
// when the hub has stopped.
func (h *Hub) Publish(t *models.Tournament) bool {
	if t == nil {
		return true
	}
	room := RoomFor(t.ID)
	data, err := json.Marshal(Message{Type: MessageSnapshot, Payload: t, RoomID: room})
	if err != nil {
		h.logger.Error("failed to encode snapshot", slog.Int("tournament_id", t.ID), slog.Any("error", err))
		return true
	}
	select {
	case h.broadcast <- outbound{room: room, data: data}:
		return true
	case <-h.done:
		return false
	}
}

// Follow publishes every snapshot received on snapshots until the channel is
// closed or ctx is done.
func (h *Hub) Follow(ctx context.Context, snapshots <-chan *models.Tournament) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-snapshots:
			if !ok || !h.Publish(t) {
				return
			}
		}
	}
}

// Attach registers conn in room and starts its pumps. The newest snapshot of
// the room is sent right away.
func (h *Hub) Attach(conn *websocket.Conn, room string) {
	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: room,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// Client is one websocket connection of a console display.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	room string
}

// readPump only drains control frames; clients do not send anything useful.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { return c.conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("console client read failed", slog.String("room", c.room), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Каждый снимок уходит отдельным кадром: клиент разбирает JSON целиком.
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.logger.Debug("console client write failed", slog.String("room", c.room), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
