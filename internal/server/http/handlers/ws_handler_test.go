package handlers

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/notify"
)

func newWSServer(t *testing.T, registry *notify.Registry, principal model.Principal) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := NewWSHandler(registry, logger)

	router := gin.New()
	router.GET("/ws", withPrincipal(principal), handler.Serve)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if resp != nil {
		t.Cleanup(func() { _ = resp.Body.Close() })
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWSHandlerDeliversEvents(t *testing.T) {
	registry := notify.NewRegistry()
	principal := model.Principal{ID: uuid.New(), Role: model.RoleVendor}
	server := newWSServer(t, registry, principal)
	conn := dialWS(t, server)

	// The subscription is registered during the upgrade handshake; give the
	// handler goroutine a moment to reach Subscribe.
	deadline := time.Now().Add(2 * time.Second)
	for registry.Connections(principal.ID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	registry.Publish(principal.ID, notify.Event{
		Name:    notify.EventNewOrder,
		Payload: notify.NewOrderPayload{OrderID: uuid.New(), TotalAmount: 1205.50},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var received notify.Event
	if err := conn.ReadJSON(&received); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if received.Name != notify.EventNewOrder {
		t.Fatalf("event = %q, want %q", received.Name, notify.EventNewOrder)
	}
}

func TestWSHandlerUnsubscribesOnDisconnect(t *testing.T) {
	registry := notify.NewRegistry()
	principal := model.Principal{ID: uuid.New(), Role: model.RoleVendor}
	server := newWSServer(t, registry, principal)
	conn := dialWS(t, server)

	deadline := time.Now().Add(2 * time.Second)
	for registry.Connections(principal.ID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	_ = conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for registry.Connections(principal.ID) != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never removed after disconnect")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWSHandlerClosesOnRegistryShutdown(t *testing.T) {
	registry := notify.NewRegistry()
	principal := model.Principal{ID: uuid.New(), Role: model.RoleVendor}
	server := newWSServer(t, registry, principal)
	conn := dialWS(t, server)

	deadline := time.Now().Add(2 * time.Second)
	for registry.Connections(principal.ID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	registry.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected close after registry shutdown")
	}
}
