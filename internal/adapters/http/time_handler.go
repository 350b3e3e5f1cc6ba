package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flowops/api/internal/application/services"
	"github.com/flowops/api/internal/infrastructure/logger"
	"github.com/flowops/api/internal/ports"
)

// TimeHandler handles time tracking requests
type TimeHandler struct {
	timeService *services.TimeService
	logger      *logger.Logger
}

// NewTimeHandler creates a new time handler
func NewTimeHandler(timeService *services.TimeService, logger *logger.Logger) *TimeHandler {
	return &TimeHandler{
		timeService: timeService,
		logger:      logger,
	}
}

// StartTimer opens a time entry for the calling user. A user with a
// running timer gets a conflict and nothing is written.
func (h *TimeHandler) StartTimer(c echo.Context) error {
	var req ports.StartTimerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.timeService.StartTimer(c.Request().Context(), getUserIDFromContext(c), req.TaskID, req.Description)
	if err != nil {
		h.logger.Warnw("Start timer failed", "error", err, "task_id", req.TaskID)
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"entry": entry})
}

// StopTimer closes the referenced entry, recording its duration
func (h *TimeHandler) StopTimer(c echo.Context) error {
	var req ports.StopTimerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.timeService.StopTimer(c.Request().Context(), req.EntryID)
	if err != nil {
		h.logger.Warnw("Stop timer failed", "error", err, "entry_id", req.EntryID)
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"entry": entry})
}

// GetActiveTimer returns the user's running entry, or a null entry when
// no timer is running
func (h *TimeHandler) GetActiveTimer(c echo.Context) error {
	entry, err := h.timeService.GetActiveTimer(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		h.logger.Errorw("Get active timer failed", "error", err)
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"entry": entry})
}

// ListTimeEntries returns entries newest first, optionally filtered by task
func (h *TimeHandler) ListTimeEntries(c echo.Context) error {
	var taskID *uuid.UUID
	if taskIDStr := c.QueryParam("task_id"); taskIDStr != "" {
		id, err := uuid.Parse(taskIDStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid task_id")
		}
		taskID = &id
	}

	entries, err := h.timeService.ListTimeEntries(c.Request().Context(), taskID)
	if err != nil {
		h.logger.Errorw("List time entries failed", "error", err)
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"entries": entries})
}
