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

// time_entries carries a partial unique index on (user_id) WHERE end_time
// IS NULL. That index, not the service-level check, is what actually
// enforces one open entry per user under concurrent starts.
const openEntryConstraint = "time_entries_one_open_per_user"

// TimeEntryRepositoryImpl implements the TimeEntryRepository interface
type TimeEntryRepositoryImpl struct {
	db *sqlx.DB
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db *sqlx.DB) ports.TimeEntryRepository {
	return &TimeEntryRepositoryImpl{db: db}
}

func (r *TimeEntryRepositoryImpl) Create(ctx context.Context, entry *entities.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, task_id, user_id, start_time, end_time, duration, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.TaskID, entry.UserID, entry.StartTime,
		entry.EndTime, entry.Duration, entry.Description, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, openEntryConstraint) {
			return entities.ErrActiveTimerExists
		}
		return fmt.Errorf("create time entry: %w", err)
	}

	return nil
}

func (r *TimeEntryRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.TimeEntry, error) {
	query := entrySelect + ` WHERE te.id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	entry, err := scanEntry(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("get time entry by id: %w", err)
	}

	return entry, nil
}

// Close persists end_time and duration on an already-inserted row. This
// is the row's only mutation after creation.
func (r *TimeEntryRepositoryImpl) Close(ctx context.Context, entry *entities.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET end_time = $2, duration = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, entry.ID, entry.EndTime, entry.Duration)
	if err != nil {
		return fmt.Errorf("close time entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("close time entry rows affected: %w", err)
	}
	if rows == 0 {
		return entities.ErrTimeEntryNotFound
	}

	return nil
}

func (r *TimeEntryRepositoryImpl) List(ctx context.Context, filter ports.TimeEntryFilter) ([]*entities.TimeEntry, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("te.user_id = $%d", argIndex))
		args = append(args, *filter.UserID)
		argIndex++
	}
	if filter.TaskID != nil {
		conditions = append(conditions, fmt.Sprintf("te.task_id = $%d", argIndex))
		args = append(args, *filter.TaskID)
		argIndex++
	}
	if filter.StartedAt != nil {
		conditions = append(conditions, fmt.Sprintf("te.start_time >= $%d", argIndex))
		args = append(args, *filter.StartedAt)
		argIndex++
	}

	query := entrySelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY te.start_time DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	return r.selectEntries(ctx, query, args...)
}

func (r *TimeEntryRepositoryImpl) GetTaskEntries(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeEntry, error) {
	query := entrySelect + ` WHERE te.task_id = $1 ORDER BY te.start_time DESC`
	return r.selectEntries(ctx, query, taskID)
}

// GetOpenEntries returns the user's running entries, most recently
// started first. The open-entry index keeps this at zero or one rows
// unless the invariant was broken before the index existed.
func (r *TimeEntryRepositoryImpl) GetOpenEntries(ctx context.Context, userID uuid.UUID) ([]*entities.TimeEntry, error) {
	query := entrySelect + ` WHERE te.user_id = $1 AND te.end_time IS NULL ORDER BY te.start_time DESC`
	return r.selectEntries(ctx, query, userID)
}

func (r *TimeEntryRepositoryImpl) selectEntries(ctx context.Context, query string, args ...interface{}) ([]*entities.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select time entries: %w", err)
	}
	defer rows.Close()

	var entries []*entities.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("time entry row iteration: %w", err)
	}

	return entries, nil
}

const entrySelect = `
	SELECT te.id, te.task_id, te.user_id, te.start_time, te.end_time, te.duration, te.description, te.created_at,
		t.id, t.title,
		u.id, u.name, u.email
	FROM time_entries te
	LEFT JOIN tasks t ON t.id = te.task_id
	LEFT JOIN users u ON u.id = te.user_id`

func scanEntry(row rowScanner) (*entities.TimeEntry, error) {
	var entry entities.TimeEntry
	var taskID *uuid.UUID
	var taskTitle *string
	var userID *uuid.UUID
	var userName, userEmail *string

	err := row.Scan(
		&entry.ID, &entry.TaskID, &entry.UserID, &entry.StartTime,
		&entry.EndTime, &entry.Duration, &entry.Description, &entry.CreatedAt,
		&taskID, &taskTitle,
		&userID, &userName, &userEmail,
	)
	if err != nil {
		return nil, err
	}

	if taskID != nil && taskTitle != nil {
		entry.Task = &entities.TaskSummary{ID: *taskID, Title: *taskTitle}
	}
	if userID != nil && userName != nil && userEmail != nil {
		entry.User = &entities.UserSummary{ID: *userID, Name: *userName, Email: *userEmail}
	}

	return &entry, nil
}
