package services

import (
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"

	"github.com/flowops/api/internal/domain/entities"
	"github.com/flowops/api/internal/infrastructure/logger"
	"github.com/flowops/api/internal/ports"
)

// TimeService owns the timer lifecycle: a user has at most one open time
// entry at any instant. The check here gives a friendly error on the fast
// path; the authoritative guard is the storage-level partial unique index,
// which the repository surfaces as entities.ErrActiveTimerExists.
type TimeService struct {
	timeRepo ports.TimeEntryRepository
	taskRepo ports.TaskRepository
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewTimeService creates a new time service
func NewTimeService(timeRepo ports.TimeEntryRepository, taskRepo ports.TaskRepository, userRepo ports.UserRepository, logger *logger.Logger) *TimeService {
	return &TimeService{
		timeRepo: timeRepo,
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// StartTimer opens a new time entry for the user. It fails with
// entities.ErrActiveTimerExists, writing nothing, if the user already has
// a timer running.
func (s *TimeService) StartTimer(ctx context.Context, userID, taskID uuid.UUID, description string) (*entities.TimeEntry, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("start timer: %w", err)
	}

	open, err := s.timeRepo.GetOpenEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for active timer: %w", err)
	}
	if len(open) > 0 {
		return nil, entities.ErrActiveTimerExists
	}

	now := time.Now()
	entry := &entities.TimeEntry{
		ID:          uuid.New(),
		TaskID:      taskID,
		UserID:      userID,
		StartTime:   now,
		Description: description,
		CreatedAt:   now,
	}

	// Create maps a unique violation on the open-entry index back to
	// ErrActiveTimerExists, closing the window between check and insert.
	if err := s.timeRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	entry.Task = &entities.TaskSummary{ID: task.ID, Title: task.Title}
	if user, err := s.userRepo.GetByID(ctx, userID); err == nil {
		entry.User = &entities.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
	}

	s.logger.Infow("Timer started", "entry_id", entry.ID, "user_id", userID, "task_id", taskID)

	return entry, nil
}

// StopTimer closes the entry, recording end time and duration in whole
// minutes. A closed entry is terminal: stopping it again fails with
// entities.ErrTimeEntryClosed.
func (s *TimeService) StopTimer(ctx context.Context, entryID uuid.UUID) (*entities.TimeEntry, error) {
	entry, err := s.timeRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("stop timer: %w", err)
	}

	if err := entry.Stop(time.Now()); err != nil {
		return nil, err
	}

	if err := s.timeRepo.Close(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to close time entry: %w", err)
	}

	s.logger.Infow("Timer stopped",
		"entry_id", entry.ID,
		"user_id", entry.UserID,
		"duration_minutes", entry.Minutes(),
	)

	return entry, nil
}

// GetActiveTimer returns the user's open entry, or nil when no timer is
// running. More than one open row means the invariant was violated out of
// band; the most recently started entry wins and the anomaly is logged.
func (s *TimeService) GetActiveTimer(ctx context.Context, userID uuid.UUID) (*entities.TimeEntry, error) {
	open, err := s.timeRepo.GetOpenEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active timer: %w", err)
	}

	if len(open) == 0 {
		return nil, nil
	}

	if len(open) > 1 {
		s.logger.Errorw("Multiple open time entries for user",
			"user_id", userID,
			"count", len(open),
		)
	}

	return open[0], nil
}

// ListTimeEntries retrieves entries newest first, optionally scoped to a task
func (s *TimeService) ListTimeEntries(ctx context.Context, taskID *uuid.UUID) ([]*entities.TimeEntry, error) {
	entries, err := s.timeRepo.List(ctx, ports.TimeEntryFilter{TaskID: taskID})
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}

	return entries, nil
}
