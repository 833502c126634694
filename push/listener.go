package push

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// Handler consumes raw push frames.
type Handler interface {
	Handle(data []byte) (int, error)
}

// Listener holds one connection to the live channel and passes every frame to
// its handler in arrival order.
type Listener struct {
	url     string
	header  http.Header
	handler Handler
	dialer  *websocket.Dialer
	logger  *slog.Logger
}

func NewListener(url string, header http.Header, handler Handler, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		url:     url,
		header:  header,
		handler: handler,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   4096,
			WriteBufferSize:  1024,
		},
		logger: logger,
	}
}

// Listen dials the channel and reads until the connection drops or ctx is
// done. It returns nil when ctx ends the connection. Reconnecting is left to
// the caller.
func (l *Listener) Listen(ctx context.Context) error {
	conn, _, err := l.dialer.DialContext(ctx, l.url, l.header)
	if err != nil {
		return fmt.Errorf("failed to connect to push channel %s: %w", l.url, err)
	}
	l.logger.Info("push channel connected", slog.String("url", l.url))

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			conn.Close()
		case <-done:
			conn.Close()
		}
	}()
	go l.pingPump(conn, done)

	err = l.readPump(conn)
	if ctx.Err() != nil {
		l.logger.Info("push channel closed")
		return nil
	}
	return err
}

func (l *Listener) readPump(conn *websocket.Conn) error {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.logger.Info("push channel closed by server")
				return nil
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.logger.Warn("push channel closed unexpectedly", slog.Any("error", err))
			}
			return fmt.Errorf("push channel read failed: %w", err)
		}
		// Any frame proves the peer is alive.
		conn.SetReadDeadline(time.Now().Add(pongWait))

		if _, err := l.handler.Handle(message); err != nil {
			l.logger.Warn("push message rejected", slog.Any("error", err))
		}
	}
}

func (l *Listener) pingPump(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				l.logger.Debug("push channel ping failed", slog.Any("error", err))
				return
			}
		}
	}
}
