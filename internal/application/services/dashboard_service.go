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

// DashboardService is a read-time projection over tasks and time entries.
// Nothing it computes is ever written back.
type DashboardService struct {
	taskRepo ports.TaskRepository
	timeRepo ports.TimeEntryRepository
	logger   *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(taskRepo ports.TaskRepository, timeRepo ports.TimeEntryRepository, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		taskRepo: taskRepo,
		timeRepo: timeRepo,
		logger:   logger,
	}
}

// GetStats aggregates task-status counts and tracked minutes over the
// rolling today/week/month windows, all ending now. Both aggregates
// cover only the user's own tasks and entries.
func (s *DashboardService) GetStats(ctx context.Context, userID uuid.UUID) (*ports.DashboardStats, error) {
	statuses, err := s.taskRepo.ListStatuses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load task statuses: %w", err)
	}

	now := time.Now()

	// The month window subsumes today and week, so one range query covers
	// all three buckets.
	monthCutoff := now.Add(-30 * 24 * time.Hour)
	entries, err := s.timeRepo.List(ctx, ports.TimeEntryFilter{UserID: &userID, StartedAt: &monthCutoff})
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries: %w", err)
	}

	return &ports.DashboardStats{
		TaskStats: CountTaskStatuses(statuses),
		TimeStats: PeriodStats(entries, now),
	}, nil
}

// CountTaskStatuses counts tasks per status. A status outside the three
// recognized values still counts toward the total; the named buckets
// simply never see it.
func CountTaskStatuses(statuses []entities.TaskStatus) ports.TaskStats {
	stats := ports.TaskStats{Total: len(statuses)}

	for _, st := range statuses {
		switch st {
		case entities.TaskStatusTodo:
			stats.Todo++
		case entities.TaskStatusInProgress:
			stats.InProgress++
		case entities.TaskStatusCompleted:
			stats.Completed++
		}
	}

	return stats
}

// PeriodStats sums persisted durations over three rolling windows ending
// at now: since local midnight, since now-7d, and since now-30d. The
// windows overlap by construction; each is an independent aggregate. Open
// entries carry no duration and contribute nothing.
func PeriodStats(entries []*entities.TimeEntry, now time.Time) ports.TimeStats {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	weekCutoff := now.Add(-7 * 24 * time.Hour)
	monthCutoff := now.Add(-30 * 24 * time.Hour)

	var stats ports.TimeStats
	for _, e := range entries {
		if e.Duration == nil {
			continue
		}
		if !e.StartTime.Before(midnight) {
			stats.Today += *e.Duration
		}
		if !e.StartTime.Before(weekCutoff) {
			stats.Week += *e.Duration
		}
		if !e.StartTime.Before(monthCutoff) {
			stats.Month += *e.Duration
		}
	}

	return stats
}

// TaskTotalMinutes sums persisted durations over a task's entries, with a
// missing duration counting as 0.
func TaskTotalMinutes(entries []*entities.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Minutes()
	}
	return total
}
