package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowops/api/internal/domain/entities"
	"github.com/flowops/api/internal/ports"
)

// WorkspaceRepositoryImpl implements the WorkspaceRepository interface
type WorkspaceRepositoryImpl struct {
	db *sqlx.DB
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(db *sqlx.DB) ports.WorkspaceRepository {
	return &WorkspaceRepositoryImpl{db: db}
}

func (r *WorkspaceRepositoryImpl) Create(ctx context.Context, workspace *entities.Workspace) error {
	query := `
		INSERT INTO workspaces (id, name, owner_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		workspace.ID, workspace.Name, workspace.OwnerID, workspace.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}

	return nil
}

func (r *WorkspaceRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error) {
	query := `
		SELECT id, name, owner_id, created_at
		FROM workspaces
		WHERE id = $1`

	var workspace entities.Workspace
	err := r.db.GetContext(ctx, &workspace, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get workspace by id: %w", err)
	}

	return &workspace, nil
}

// GetUserWorkspace resolves a user's workspace through their membership,
// oldest membership first so the signup-provisioned workspace wins.
func (r *WorkspaceRepositoryImpl) GetUserWorkspace(ctx context.Context, userID uuid.UUID) (*entities.Workspace, error) {
	query := `
		SELECT w.id, w.name, w.owner_id, w.created_at
		FROM workspaces w
		JOIN workspace_members wm ON wm.workspace_id = w.id
		WHERE wm.user_id = $1
		ORDER BY wm.joined_at ASC
		LIMIT 1`

	var workspace entities.Workspace
	err := r.db.GetContext(ctx, &workspace, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("get user workspace: %w", err)
	}

	return &workspace, nil
}

func (r *WorkspaceRepositoryImpl) AddMember(ctx context.Context, member *entities.WorkspaceMember) error {
	query := `
		INSERT INTO workspace_members (id, workspace_id, user_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.WorkspaceID, member.UserID, member.Role, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("add workspace member: %w", err)
	}

	return nil
}
