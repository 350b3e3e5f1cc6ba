package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flowops/api/internal/application/services"
	"github.com/flowops/api/internal/infrastructure/logger"
	"github.com/flowops/api/internal/ports"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects returns the user's workspace projects ordered by name
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		h.logger.Errorw("List projects failed", "error", err)
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"projects": projects})
}

// CreateProject creates a project in the user's workspace
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), getUserIDFromContext(c), req)
	if err != nil {
		h.logger.Errorw("Create project failed", "error", err)
		return resolveError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"project": project})
}
