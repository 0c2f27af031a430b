package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/smartkart/smartkart/internal/notify"
)

const writeTimeout = 10 * time.Second

// WSHandler bridges the notification registry to websocket clients.
type WSHandler struct {
	registry *notify.Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler constructs WSHandler.
func NewWSHandler(registry *notify.Registry, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve handles GET /api/ws. The connection receives the caller's events as
// JSON frames until either side closes.
func (h *WSHandler) Serve(c *gin.Context) {
	p := CurrentPrincipal(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	sub := h.registry.Subscribe(p.ID)
	if sub == nil {
		return
	}
	defer h.registry.Unsubscribe(p.ID, sub)

	// Drain the read side so pings and close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case event, ok := <-sub.Events():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeTimeout))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
