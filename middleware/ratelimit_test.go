package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestLimiterAllow(t *testing.T) {
	l := newLimiter(time.Minute, 3)
	now := time.Now()

	for i := 0; i < 3; i++ {
		ok, _ := l.allow("alice", now.Add(time.Duration(i)*time.Second))
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, retryAfter := l.allow("alice", now.Add(4*time.Second))
	if ok {
		t.Fatal("fourth attempt inside the window should be blocked")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("retryAfter = %v, want within (0, 1m]", retryAfter)
	}

	// A different key is unaffected.
	if ok, _ := l.allow("bob", now.Add(5*time.Second)); !ok {
		t.Error("other keys must not share the budget")
	}

	// Once the oldest attempt slides out of the window, the key recovers.
	if ok, _ := l.allow("alice", now.Add(time.Minute+time.Second)); !ok {
		t.Error("attempt after the window should be allowed")
	}
}

func TestSensitiveLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", SensitiveLimit(time.Minute, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := hit(); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}
	w := hit()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if body := w.Body.String(); body == "" {
		t.Error("throttled response should carry an error body")
	}
}
