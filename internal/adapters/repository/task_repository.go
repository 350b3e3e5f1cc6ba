package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowops/api/internal/domain/entities"
	"github.com/flowops/api/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, priority, project_id, created_by, assignee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.ProjectID, task.CreatedBy, task.AssigneeID, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := taskSelect + ` WHERE t.id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
			project_id = $6, assignee_id = $7, updated_at = $8
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.Priority,
		task.ProjectID, task.AssigneeID, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update task rows affected: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.ProjectID != nil {
		conditions = append(conditions, fmt.Sprintf("t.project_id = $%d", argIndex))
		args = append(args, *filter.ProjectID)
		argIndex++
	}
	if filter.AssigneeID != nil {
		conditions = append(conditions, fmt.Sprintf("t.assignee_id = $%d", argIndex))
		args = append(args, *filter.AssigneeID)
		argIndex++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("t.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	query := taskSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entities.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task row iteration: %w", err)
	}

	return tasks, nil
}

// ListStatuses returns the statuses of the tasks visible to the user,
// meaning tasks they created or are assigned to.
func (r *TaskRepositoryImpl) ListStatuses(ctx context.Context, userID uuid.UUID) ([]entities.TaskStatus, error) {
	var statuses []entities.TaskStatus
	err := r.db.SelectContext(ctx, &statuses,
		`SELECT status FROM tasks WHERE created_by = $1 OR assignee_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list task statuses: %w", err)
	}

	return statuses, nil
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.priority,
		t.project_id, t.created_by, t.assignee_id, t.created_at, t.updated_at,
		p.id, p.name,
		u.id, u.name, u.email
	FROM tasks t
	LEFT JOIN projects p ON p.id = t.project_id
	LEFT JOIN users u ON u.id = t.assignee_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*entities.Task, error) {
	var task entities.Task
	var projectID *uuid.UUID
	var projectName *string
	var assigneeID *uuid.UUID
	var assigneeName, assigneeEmail *string

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.ProjectID, &task.CreatedBy, &task.AssigneeID, &task.CreatedAt, &task.UpdatedAt,
		&projectID, &projectName,
		&assigneeID, &assigneeName, &assigneeEmail,
	)
	if err != nil {
		return nil, err
	}

	if projectID != nil && projectName != nil {
		task.Project = &entities.ProjectSummary{ID: *projectID, Name: *projectName}
	}
	if assigneeID != nil && assigneeName != nil && assigneeEmail != nil {
		task.Assignee = &entities.UserSummary{ID: *assigneeID, Name: *assigneeName, Email: *assigneeEmail}
	}

	return &task, nil
}
