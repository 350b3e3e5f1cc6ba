package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/flowops/api/internal/domain/entities"
	"github.com/flowops/api/internal/infrastructure/database"
	"github.com/flowops/api/internal/ports"
)

// users.email carries a unique constraint, so a concurrent duplicate
// signup that slips past the service-level lookup still fails here.
const emailConstraint = "users_email_key"

// isUniqueViolation reports whether err is a Postgres unique violation
// on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == constraint
}

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, emailConstraint) {
			return entities.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Provision inserts the user, their default workspace, and the owner
// membership in one transaction.
func (r *UserRepositoryImpl) Provision(ctx context.Context, user *entities.User, workspace *entities.Workspace, member *entities.WorkspaceMember) error {
	return database.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			user.ID, user.Email, user.Name, user.PasswordHash,
			user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err, emailConstraint) {
				return entities.ErrEmailTaken
			}
			return fmt.Errorf("provision user: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO workspaces (id, name, owner_id, created_at)
			VALUES ($1, $2, $3, $4)`,
			workspace.ID, workspace.Name, workspace.OwnerID, workspace.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("provision workspace: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO workspace_members (id, workspace_id, user_id, role, joined_at)
			VALUES ($1, $2, $3, $4, $5)`,
			member.ID, member.WorkspaceID, member.UserID, member.Role, member.JoinedAt,
		)
		if err != nil {
			return fmt.Errorf("provision workspace member: %w", err)
		}

		return nil
	})
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user entities.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	var user entities.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}
