package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Drona-Balasara/ALUMNET/config"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.App.JWTSecret = "test-secret"
	config.App.JWTExpiry = time.Hour
}

func signToken(t *testing.T, secret, sub, role string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"exp":  time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID"), "role": c.GetString("role")})
	})
	r.GET("/feed", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	r.POST("/jobs", Auth(), RequireRole("alumni"), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := authRouter()

	t.Run("accepts a valid token", func(t *testing.T) {
		token := signToken(t, "test-secret", "64f000000000000000000001", "student", time.Hour)
		w := doRequest(r, http.MethodGet, "/me", token)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/me", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token := signToken(t, "wrong-secret", "64f000000000000000000001", "student", time.Hour)
		w := doRequest(r, http.MethodGet, "/me", token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token := signToken(t, "test-secret", "64f000000000000000000001", "student", -time.Hour)
		w := doRequest(r, http.MethodGet, "/me", token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	r := authRouter()

	t.Run("passes through without a token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/feed", "")
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("passes through with an invalid token", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/feed", "not-a-token")
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}

func TestRequireRole(t *testing.T) {
	r := authRouter()

	t.Run("allows the required role", func(t *testing.T) {
		token := signToken(t, "test-secret", "64f000000000000000000002", "alumni", time.Hour)
		w := doRequest(r, http.MethodPost, "/jobs", token)
		if w.Code != http.StatusCreated {
			t.Errorf("status = %d, want 201", w.Code)
		}
	})

	t.Run("blocks other roles", func(t *testing.T) {
		token := signToken(t, "test-secret", "64f000000000000000000002", "student", time.Hour)
		w := doRequest(r, http.MethodPost, "/jobs", token)
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})
}
