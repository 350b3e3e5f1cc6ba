package ports

import (
	"github.com/google/uuid"

	"github.com/flowops/api/internal/domain/entities"
)

// Request/Response Types

// Auth related types
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Task related types
type CreateTaskRequest struct {
	Title       string             `json:"title" validate:"required,max=200"`
	Description *string            `json:"description"`
	Status      entities.TaskStatus `json:"status" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    entities.Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	ProjectID   *uuid.UUID         `json:"project_id"`
	AssigneeID  *uuid.UUID         `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Title       *string              `json:"title" validate:"omitempty,max=200"`
	Description *string              `json:"description"`
	Status      *entities.TaskStatus `json:"status" validate:"omitempty,oneof=todo in_progress completed"`
	Priority    *entities.Priority   `json:"priority" validate:"omitempty,oneof=low medium high"`
	ProjectID   *uuid.UUID           `json:"project_id"`
	AssigneeID  *uuid.UUID           `json:"assignee_id"`
}

// Project related types
type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

// Time tracking related types
type StartTimerRequest struct {
	TaskID      uuid.UUID `json:"task_id" validate:"required"`
	Description string    `json:"description"`
}

type StopTimerRequest struct {
	EntryID uuid.UUID `json:"entry_id" validate:"required"`
}

// Dashboard types
type TaskStats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

type TimeStats struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
}

type DashboardStats struct {
	TaskStats TaskStats `json:"taskStats"`
	TimeStats TimeStats `json:"timeStats"`
}
