package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowops/api/internal/domain/entities"
	"github.com/flowops/api/internal/infrastructure/logger"
	"github.com/flowops/api/internal/ports"
)

// ProjectService handles project management operations
type ProjectService struct {
	projectRepo   ports.ProjectRepository
	workspaceRepo ports.WorkspaceRepository
	logger        *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, workspaceRepo ports.WorkspaceRepository, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		workspaceRepo: workspaceRepo,
		logger:        logger,
	}
}

// CreateProject creates a project in the calling user's workspace
func (s *ProjectService) CreateProject(ctx context.Context, userID uuid.UUID, req ports.CreateProjectRequest) (*entities.Project, error) {
	workspace, err := s.workspaceRepo.GetUserWorkspace(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}

	project := &entities.Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		WorkspaceID: workspace.ID,
		CreatedAt:   time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Infow("Project created", "project_id", project.ID, "workspace_id", workspace.ID)

	return project, nil
}

// ListProjects retrieves the user's workspace projects ordered by name
func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	workspace, err := s.workspaceRepo.GetUserWorkspace(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}

	projects, err := s.projectRepo.List(ctx, workspace.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}
