package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flowops/api/internal/domain/entities"
)

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}

// getUserIDFromContext extracts the authenticated user ID set by the auth
// middleware
func getUserIDFromContext(c echo.Context) uuid.UUID {
	userIDStr, ok := c.Get("user").(string)
	if !ok {
		return uuid.Nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil
	}

	return userID
}

// resolveError maps domain sentinel errors to HTTP status codes. Anything
// unrecognized is a storage or internal failure and surfaces as an opaque
// 500.
func resolveError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, entities.ErrActiveTimerExists),
		errors.Is(err, entities.ErrTimeEntryClosed),
		errors.Is(err, entities.ErrEmailTaken),
		errors.Is(err, entities.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrProjectNotFound),
		errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrWorkspaceNotFound),
		errors.Is(err, entities.ErrTimeEntryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
