package live

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/scrabble-director/models"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(conn, r.URL.Query().Get("room"))
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readSnapshot(t *testing.T, conn *websocket.Conn) (Message, models.Tournament) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var raw struct {
		Type    string            `json:"type"`
		RoomID  string            `json:"room_id"`
		Payload models.Tournament `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return Message{Type: raw.Type, RoomID: raw.RoomID}, raw.Payload
}

func TestHub_LateJoinerGetsLatestSnapshot(t *testing.T) {
	hub, url := startHub(t)
	hub.Publish(&models.Tournament{ID: 1, Name: "First"})

	conn := dial(t, url)
	msg, got := readSnapshot(t, conn)
	if msg.Type != MessageSnapshot || msg.RoomID != "1" || got.Name != "First" {
		t.Fatalf("message = %+v %+v, want snapshot First for room 1", msg, got)
	}

	hub.Publish(&models.Tournament{ID: 1, Name: "Second"})
	if _, got := readSnapshot(t, conn); got.Name != "Second" {
		t.Fatalf("snapshot = %q, want Second", got.Name)
	}
}

func TestHub_RoomsOnlySeeTheirTournament(t *testing.T) {
	hub, url := startHub(t)
	hub.Publish(&models.Tournament{ID: 2, Name: "Two"})

	conn := dial(t, url+"?room="+RoomFor(2))
	if _, got := readSnapshot(t, conn); got.ID != 2 {
		t.Fatalf("first snapshot = %d, want tournament 2", got.ID)
	}

	hub.Publish(&models.Tournament{ID: 1, Name: "One"})
	hub.Publish(&models.Tournament{ID: 2, Name: "Two again"})
	if _, got := readSnapshot(t, conn); got.ID != 2 || got.Name != "Two again" {
		t.Fatalf("snapshot = %+v, want Two again", got)
	}
}

func TestHub_FollowStopsWhenChannelCloses(t *testing.T) {
	hub, url := startHub(t)
	ch := make(chan *models.Tournament, 1)
	done := make(chan struct{})
	go func() {
		hub.Follow(context.Background(), ch)
		close(done)
	}()

	ch <- &models.Tournament{ID: 5, Name: "Followed"}
	conn := dial(t, url)
	if _, got := readSnapshot(t, conn); got.ID != 5 {
		t.Fatalf("snapshot = %+v, want tournament 5", got)
	}

	close(ch)
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatalf("Follow did not return after the channel closed")
	}
}

func TestHub_PublishAfterStop(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if hub.Publish(&models.Tournament{ID: 1}) {
		t.Fatalf("Publish on a stopped hub returned true")
	}
}
