package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Drona-Balasara/ALUMNET/models"
	"github.com/Drona-Balasara/ALUMNET/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func recordBusinessError(t *testing.T, err error, notFoundCode string) (int, errorEnvelope) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondBusinessError(c, err, notFoundCode)

	var env errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return w.Code, env
}

func TestRespondBusinessError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"already registered", models.ErrAlreadyRegistered, http.StatusBadRequest, "ALREADY_REGISTERED"},
		{"registration closed", models.ErrRegistrationClosed, http.StatusBadRequest, "REGISTRATION_CLOSED"},
		{"not registered", models.ErrNotRegistered, http.StatusBadRequest, "NOT_REGISTERED"},
		{"job expired", models.ErrJobExpired, http.StatusBadRequest, "JOB_EXPIRED"},
		{"deadline passed", models.ErrApplicationDeadlinePassed, http.StatusBadRequest, "APPLICATION_DEADLINE_PASSED"},
		{"already applied", models.ErrAlreadyApplied, http.StatusBadRequest, "ALREADY_APPLIED"},
		{"own job", models.ErrCannotApplyOwnJob, http.StatusBadRequest, "CANNOT_APPLY_OWN_JOB"},
		{"application missing", models.ErrApplicationNotFound, http.StatusNotFound, "APPLICATION_NOT_FOUND"},
		{"bad status", models.ErrInvalidApplicationStatus, http.StatusBadRequest, "INVALID_APPLICATION_STATUS"},
		{"bad location", models.ErrInvalidLocation, http.StatusBadRequest, "INVALID_LOCATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := recordBusinessError(t, tt.err, "EVENT_NOT_FOUND")
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if env.Success {
				t.Error("success should be false")
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", env.Error.Code, tt.wantCode)
			}
		})
	}

	t.Run("store not-found uses the caller's code", func(t *testing.T) {
		status, env := recordBusinessError(t, store.ErrNotFound, "JOB_NOT_FOUND")
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
		if env.Error.Code != "JOB_NOT_FOUND" {
			t.Errorf("code = %q, want JOB_NOT_FOUND", env.Error.Code)
		}
	})

	t.Run("unmapped errors become a generic 500", func(t *testing.T) {
		status, env := recordBusinessError(t, errors.New("connection reset"), "EVENT_NOT_FOUND")
		if status != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", status)
		}
		if env.Error.Code != "INTERNAL_ERROR" {
			t.Errorf("code = %q, want INTERNAL_ERROR", env.Error.Code)
		}
		if env.Error.Message == "connection reset" {
			t.Error("internal error detail must not leak to the client")
		}
	})
}

func TestCurrentUserID(t *testing.T) {
	newCtx := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		return c
	}

	t.Run("parses the hex id set by auth", func(t *testing.T) {
		c := newCtx()
		want := primitive.NewObjectID()
		c.Set("userID", want.Hex())
		got, ok := currentUserID(c)
		if !ok || got != want {
			t.Errorf("currentUserID = (%v, %v), want (%v, true)", got, ok, want)
		}
	})

	t.Run("reports absence", func(t *testing.T) {
		if _, ok := currentUserID(newCtx()); ok {
			t.Error("expected ok = false without a principal")
		}
	})

	t.Run("rejects a malformed id", func(t *testing.T) {
		c := newCtx()
		c.Set("userID", "not-hex")
		if _, ok := currentUserID(c); ok {
			t.Error("expected ok = false for a malformed id")
		}
	})
}

func TestPagination(t *testing.T) {
	p := pagination(2, 20, 45)
	if p["totalPages"] != int64(3) {
		t.Errorf("totalPages = %v, want 3", p["totalPages"])
	}
	if p["hasNextPage"] != true || p["hasPrevPage"] != true {
		t.Errorf("page flags = (%v, %v), want (true, true)", p["hasNextPage"], p["hasPrevPage"])
	}

	p = pagination(1, 20, 5)
	if p["totalPages"] != int64(1) {
		t.Errorf("totalPages = %v, want 1", p["totalPages"])
	}
	if p["hasNextPage"] != false || p["hasPrevPage"] != false {
		t.Errorf("page flags = (%v, %v), want (false, false)", p["hasNextPage"], p["hasPrevPage"])
	}
}
