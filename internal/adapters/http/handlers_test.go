package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flowops/api/internal/domain/entities"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{entities.ErrActiveTimerExists, http.StatusBadRequest},
		{entities.ErrTimeEntryClosed, http.StatusBadRequest},
		{entities.ErrEmailTaken, http.StatusBadRequest},
		{entities.ErrInvalidStatus, http.StatusBadRequest},
		{entities.ErrTaskNotFound, http.StatusNotFound},
		{entities.ErrProjectNotFound, http.StatusNotFound},
		{entities.ErrUserNotFound, http.StatusNotFound},
		{entities.ErrWorkspaceNotFound, http.StatusNotFound},
		{entities.ErrTimeEntryNotFound, http.StatusNotFound},
		{entities.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			httpErr := resolveError(tt.err)
			if httpErr.Code != tt.code {
				t.Errorf("status = %d, want %d", httpErr.Code, tt.code)
			}
		})
	}
}

func TestResolveErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("starting timer: %w", entities.ErrActiveTimerExists)
	if got := resolveError(wrapped).Code; got != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestResolveErrorHidesInternals(t *testing.T) {
	httpErr := resolveError(errors.New("pq: relation tasks does not exist"))
	msg, ok := httpErr.Message.(string)
	if !ok {
		t.Fatalf("message is %T, want string", httpErr.Message)
	}
	if strings.Contains(msg, "pq:") {
		t.Errorf("internal error detail leaked: %q", msg)
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	e := echo.New()

	newCtx := func() echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("valid", func(t *testing.T) {
		id := uuid.New()
		c := newCtx()
		c.Set("user", id.String())
		if got := getUserIDFromContext(c); got != id {
			t.Errorf("user id = %s, want %s", got, id)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if got := getUserIDFromContext(newCtx()); got != uuid.Nil {
			t.Errorf("user id = %s, want nil uuid", got)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		c := newCtx()
		c.Set("user", "not-a-uuid")
		if got := getUserIDFromContext(c); got != uuid.Nil {
			t.Errorf("user id = %s, want nil uuid", got)
		}
	})
}
