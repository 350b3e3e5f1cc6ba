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

// TaskService handles task management operations
type TaskService struct {
	taskRepo ports.TaskRepository
	timeRepo ports.TimeEntryRepository
	logger   *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, timeRepo ports.TimeEntryRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		timeRepo: timeRepo,
		logger:   logger,
	}
}

// CreateTask creates a new task owned by the calling user
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	status := req.Status
	if status == "" {
		status = entities.TaskStatusTodo
	} else if !status.IsValid() {
		return nil, entities.ErrInvalidStatus
	}
	priority := req.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}

	now := time.Now()
	task := &entities.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		ProjectID:   req.ProjectID,
		CreatedBy:   userID,
		AssigneeID:  req.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("Task created", "task_id", task.ID, "created_by", userID)

	return task, nil
}

// GetTask retrieves a task with its computed total time
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := s.timeRepo.GetTaskEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task time entries: %w", err)
	}
	task.TotalTime = TaskTotalMinutes(entries)

	return task, nil
}

// UpdateTask applies partial updates to a task. Status transitions are
// unconstrained: any recognized value can replace any other.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.ProjectID != nil {
		task.ProjectID = req.ProjectID
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Infow("Task updated", "task_id", task.ID, "status", task.Status)

	return task, nil
}

// ListTasks retrieves tasks newest first, each with its computed total time
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	for _, task := range tasks {
		entries, err := s.timeRepo.GetTaskEntries(ctx, task.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load task time entries: %w", err)
		}
		task.TotalTime = TaskTotalMinutes(entries)
	}

	return tasks, nil
}
