package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flowops/api/internal/domain/entities"
)

// UserRepository defines the interface for user data operations.
// Provision writes the user, their default workspace, and the owner
// membership atomically: a failure leaves none of the three rows behind.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Provision(ctx context.Context, user *entities.User, workspace *entities.Workspace, member *entities.WorkspaceMember) error
}

// WorkspaceRepository defines the interface for workspace data operations
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *entities.Workspace) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error)
	GetUserWorkspace(ctx context.Context, userID uuid.UUID) (*entities.Workspace, error)
	AddMember(ctx context.Context, member *entities.WorkspaceMember) error
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	List(ctx context.Context, workspaceID uuid.UUID) ([]*entities.Project, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	ListStatuses(ctx context.Context, userID uuid.UUID) ([]entities.TaskStatus, error)
}

// TimeEntryRepository defines the interface for time entry data operations.
// Create must surface entities.ErrActiveTimerExists when the storage-level
// one-open-entry-per-user constraint rejects the insert.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *entities.TimeEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TimeEntry, error)
	Close(ctx context.Context, entry *entities.TimeEntry) error
	List(ctx context.Context, filter TimeEntryFilter) ([]*entities.TimeEntry, error)
	GetTaskEntries(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeEntry, error)
	GetOpenEntries(ctx context.Context, userID uuid.UUID) ([]*entities.TimeEntry, error)
}

// AuthRepository defines the interface for refresh token persistence
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// Filter types for repository queries

type TaskFilter struct {
	ProjectID  *uuid.UUID
	AssigneeID *uuid.UUID
	Status     *entities.TaskStatus
}

type TimeEntryFilter struct {
	UserID    *uuid.UUID
	TaskID    *uuid.UUID
	StartedAt *time.Time
	Limit     int
}

// RefreshToken represents a refresh token record
type RefreshToken struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsValid checks that the refresh token is neither expired nor revoked
func (rt *RefreshToken) IsValid() bool {
	return rt.RevokedAt == nil && time.Now().Before(rt.ExpiresAt)
}
