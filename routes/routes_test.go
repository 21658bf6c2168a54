package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"greengarden/handlers"

	"github.com/gin-gonic/gin"
)

func stub(name string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, name) }
}

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		ChatHandler:         stub("chat"),
		EndSessionHandler:   stub("end"),
		ChatSocketHandler:   stub("ws"),
		MenuHandler:         stub("menu"),
		AvailabilityHandler: stub("availability"),
		AdminLoginHandler:   stub("login"),
		ListOrdersHandler:   stub("orders"),
		ListBookingsHandler: stub("bookings"),
	}, []string{"http://localhost:3000"})

	tests := []struct {
		method, path string
		code         int
		body         string
	}{
		{http.MethodPost, "/api/chat", 200, "chat"},
		{http.MethodDelete, "/api/chat/abc", 200, "end"},
		{http.MethodGet, "/api/menu", 200, "menu"},
		{http.MethodGet, "/api/availability", 200, "availability"},
		{http.MethodPost, "/api/admin/login", 200, "login"},
		{http.MethodGet, "/api/orders", 401, ""},
		{http.MethodGet, "/api/bookings", 401, ""},
		{http.MethodGet, "/health", 200, ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.code {
			t.Errorf("%s %s: code = %d, want %d", tt.method, tt.path, w.Code, tt.code)
			continue
		}
		if tt.body != "" && w.Body.String() != tt.body {
			t.Errorf("%s %s: body = %q, want %q", tt.method, tt.path, w.Body.String(), tt.body)
		}
	}
}
