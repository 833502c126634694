package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/scrabble-director/live"
)

type WebSocketHandler struct {
	hub      *live.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler разрешает подключения только с allowedOrigins; пустой
// список означает любой Origin (локальная консоль).
func NewWebSocketHandler(hub *live.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowed) == 0 {
					return true
				}
				_, ok := allowed[r.Header.Get("Origin")]
				return ok
			},
		},
		logger: logger,
	}
}

// ServeWs подключает дисплей к потоку снимков. С ?tournament={id} клиент
// получает только этот турнир, без параметра любой открытый.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	room := live.AllRooms
	if idStr := r.URL.Query().Get("tournament"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			errorResponse(w, r, http.StatusBadRequest, "invalid tournament id")
			return
		}
		room = live.RoomFor(id)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader.Upgrade сам отправляет HTTP ошибку клиенту, так что здесь просто логируем.
		h.logger.Debug("websocket upgrade failed", slog.Any("error", err))
		return
	}
	h.hub.Attach(conn, room)
}
