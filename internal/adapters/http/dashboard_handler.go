package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flowops/api/internal/application/services"
	"github.com/flowops/api/internal/infrastructure/logger"
)

// DashboardHandler handles dashboard aggregation requests
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats returns the calling user's task-status counts and tracked
// minutes for the rolling today/week/month windows
func (h *DashboardHandler) GetStats(c echo.Context) error {
	stats, err := h.dashboardService.GetStats(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		h.logger.Errorw("Dashboard stats failed", "error", err)
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, stats)
}
