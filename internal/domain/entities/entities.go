package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrTimeEntryNotFound    = errors.New("time entry not found")
	ErrActiveTimerExists    = errors.New("active timer already running")
	ErrTimeEntryClosed      = errors.New("time entry already stopped")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidStatus        = errors.New("invalid status")
)

// Enums and types
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type WorkspaceRole string

const (
	WorkspaceRoleOwner  WorkspaceRole = "owner"
	WorkspaceRoleMember WorkspaceRole = "member"
)

// User represents a user account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the embedded shape returned alongside tasks and time entries
type UserSummary struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
}

// Workspace is the tenant boundary grouping users, projects and tasks
type Workspace struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WorkspaceMember ties a user to a workspace
type WorkspaceMember struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	WorkspaceID uuid.UUID     `json:"workspace_id" db:"workspace_id"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id"`
	Role        WorkspaceRole `json:"role" db:"role"`
	JoinedAt    time.Time     `json:"joined_at" db:"joined_at"`
}

// Project groups tasks inside a workspace
type Project struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	WorkspaceID uuid.UUID `json:"workspace_id" db:"workspace_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// ProjectSummary is the embedded shape returned alongside tasks
type ProjectSummary struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// Task represents a unit of work
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Status      TaskStatus `json:"status" db:"status"`
	Priority    Priority   `json:"priority" db:"priority"`
	ProjectID   *uuid.UUID `json:"project_id" db:"project_id"`
	CreatedBy   uuid.UUID  `json:"created_by" db:"created_by"`
	AssigneeID  *uuid.UUID `json:"assignee_id" db:"assignee_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// Loaded relations, not columns
	Project  *ProjectSummary `json:"project,omitempty" db:"-"`
	Assignee *UserSummary    `json:"assignee,omitempty" db:"-"`

	// TotalTime is derived from time entries on read, never stored
	TotalTime int `json:"total_time" db:"-"`
}

// TimeEntry represents one interval of tracked work on a task.
// An entry with no end time is open: the user's timer is running.
type TimeEntry struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TaskID      uuid.UUID  `json:"task_id" db:"task_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	StartTime   time.Time  `json:"start_time" db:"start_time"`
	EndTime     *time.Time `json:"end_time" db:"end_time"`
	Duration    *int       `json:"duration" db:"duration"`
	Description string     `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Loaded relations, not columns
	Task *TaskSummary `json:"task,omitempty" db:"-"`
	User *UserSummary `json:"user,omitempty" db:"-"`
}

// TaskSummary is the embedded shape returned alongside time entries
type TaskSummary struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`
}

// IsOpen reports whether the entry's timer is still running
func (te *TimeEntry) IsOpen() bool {
	return te.EndTime == nil
}

// Stop closes the entry at the given instant. Duration is persisted in
// whole minutes, truncated toward zero, so an entry stopped within its
// first minute records 0. Closed entries are immutable; stopping one
// again fails.
func (te *TimeEntry) Stop(at time.Time) error {
	if te.EndTime != nil {
		return ErrTimeEntryClosed
	}

	end := at
	te.EndTime = &end
	minutes := int(end.Sub(te.StartTime) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	te.Duration = &minutes

	return nil
}

// Minutes returns the persisted duration, treating an open entry as 0
func (te *TimeEntry) Minutes() int {
	if te.Duration == nil {
		return 0
	}
	return *te.Duration
}

// LiveElapsed returns whole seconds since start for an open entry.
// Display only; it is never written back and an already-closed entry
// reports its recorded span instead.
func (te *TimeEntry) LiveElapsed(now time.Time) int {
	end := now
	if te.EndTime != nil {
		end = *te.EndTime
	}
	secs := int(end.Sub(te.StartTime) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
