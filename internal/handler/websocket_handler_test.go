package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/websocket"
)

func TestCheckOrigin(t *testing.T) {
	hub := websocket.NewHub()
	handler := NewWebSocketHandler(hub, []string{"http://localhost:5173"})

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"allowed origin", "http://localhost:5173", true},
		{"disallowed origin", "http://evil.example.com", false},
		{"no origin header", "", true},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		if got := handler.checkOrigin(req); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestHandleWS_NonUpgradeRequest(t *testing.T) {
	e := echo.New()
	hub := websocket.NewHub()
	handler := NewWebSocketHandler(hub, nil)

	// A plain GET without upgrade headers cannot become a WebSocket
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.HandleWS(c); err == nil {
		t.Fatal("Expected an error for a non-upgrade request")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("Expected no registered clients, got %d", hub.ClientCount())
	}
}
