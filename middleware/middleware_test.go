package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greengarden/config"
	"greengarden/utils"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestRateLimitPerClient(t *testing.T) {
	r := okRouter(RateLimitMiddleware(NewRateLimiterStore(2)))

	codes := make([]int, 0, 4)
	for _, ip := range []string{"10.0.0.1", "10.0.0.1", "10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 192.168.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	want := []int{200, 200, 429, 200}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
}

func TestRateLimiterDropsIdleClients(t *testing.T) {
	store := NewRateLimiterStore(10)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	store.getLimiter("10.0.0.1")
	store.getLimiter("10.0.0.2")
	if got := store.size(); got != 2 {
		t.Fatalf("size = %d, want 2", got)
	}

	clock = clock.Add(idleLimiterTTL + time.Minute)
	store.getLimiter("10.0.0.3")
	if got := store.size(); got != 1 {
		t.Errorf("size after sweep = %d, want 1", got)
	}
}

func TestClientIPFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		realIP string
		remote string
		want   string
	}{
		{"forwarded", "203.0.113.9, 10.0.0.1", "", "10.0.0.5:1234", "203.0.113.9"},
		{"garbage forwarded", "unknown", "198.51.100.7", "10.0.0.5:1234", "198.51.100.7"},
		{"remote", "", "", "10.0.0.5:1234", "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			if tt.xff != "" {
				c.Request.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				c.Request.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := getClientIP(c); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	admin, _ := utils.GenerateToken(utils.AdminSubject, utils.RoleAdmin, time.Hour)
	guest, _ := utils.GenerateToken("someone", "guest", time.Hour)

	r := okRouter(JWTAuthAdminMiddleware())
	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer nonsense", http.StatusUnauthorized},
		{"Bearer " + guest, http.StatusForbidden},
		{"Bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("header %q: code = %d, want %d", tt.header, w.Code, tt.want)
		}
	}
}
