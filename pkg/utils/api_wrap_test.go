package utils

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"freiplatz/internal/logging"
)

func TestHandleServiceErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrFacilityNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", ErrPlaceNotFound), http.StatusNotFound},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"capacity", fmt.Errorf("%w: 5 of 5 places in use", ErrCapacityExceeded), http.StatusBadRequest},
		{"duplicate availability", ErrAvailabilityExists, http.StatusConflict},
		{"field error", NewFieldError("latitude", "latitude requires longitude"), http.StatusBadRequest},
		{"page", ErrInvalidPage, http.StatusBadRequest},
		{"database", fmt.Errorf("%w: boom", ErrDatabaseError), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleServiceError(c, tt.err)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			var body APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != "error" || body.Code != tt.want {
				t.Fatalf("unexpected body %+v", body)
			}
		})
	}
}

func TestHandleServiceErrorFieldDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	HandleServiceError(c, NewFieldError("availableHours", "availableHours must not exceed totalHours"))

	var body struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Details["availableHours"] == "" {
		t.Fatalf("expected field detail, got %s", w.Body.String())
	}
}

func TestHandleServiceErrorLogging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Cleanup(func() {
		logging.Init(logging.Config{Level: "info", Format: "json"})
		SetErrorStacks(false)
	})

	tests := []struct {
		name      string
		level     string
		stacks    bool
		err       error
		wantLevel string
		wantLog   bool
	}{
		{"client error at debug", "debug", true, NewFieldError("radius", "radius requires coordinates"), `"level":"debug"`, true},
		{"client error hidden at info", "info", true, fmt.Errorf("%w: 3 of 3 places in use", ErrCapacityExceeded), "", false},
		{"not found without stack", "debug", false, ErrFacilityNotFound, `"level":"debug"`, true},
		{"server error", "info", true, errors.New("connection reset"), `"level":"error"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logging.Init(logging.Config{Level: tt.level, Output: &buf})
			SetErrorStacks(tt.stacks)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
			HandleServiceError(c, tt.err)

			out := buf.String()
			if !tt.wantLog {
				if out != "" {
					t.Fatalf("unexpected log line %s", out)
				}
				return
			}
			if !strings.Contains(out, tt.wantLevel) || !strings.Contains(out, tt.err.Error()) {
				t.Fatalf("log = %s", out)
			}
			if !strings.Contains(out, fmt.Sprintf(`"status":%d`, w.Code)) {
				t.Fatalf("log misses status %d: %s", w.Code, out)
			}
			if got := strings.Contains(out, `"stack"`); got != tt.stacks {
				t.Fatalf("stack logged = %v, want %v: %s", got, tt.stacks, out)
			}
		})
	}
}
