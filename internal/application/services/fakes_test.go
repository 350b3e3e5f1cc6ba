package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flowops/api/internal/domain/entities"
	"github.com/flowops/api/internal/ports"
)

// In-memory repository fakes. The time entry fake enforces the
// one-open-entry-per-user constraint on insert, the way the partial
// unique index does in Postgres.

type fakeTimeEntryRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entities.TimeEntry
}

func newFakeTimeEntryRepo() *fakeTimeEntryRepo {
	return &fakeTimeEntryRepo{entries: make(map[uuid.UUID]*entities.TimeEntry)}
}

func (r *fakeTimeEntryRepo) Create(ctx context.Context, entry *entities.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.EndTime == nil {
		for _, e := range r.entries {
			if e.UserID == entry.UserID && e.EndTime == nil {
				return entities.ErrActiveTimerExists
			}
		}
	}

	clone := *entry
	r.entries[entry.ID] = &clone
	return nil
}

func (r *fakeTimeEntryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, entities.ErrTimeEntryNotFound
	}

	clone := *entry
	return &clone, nil
}

func (r *fakeTimeEntryRepo) Close(ctx context.Context, entry *entities.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.entries[entry.ID]
	if !ok {
		return entities.ErrTimeEntryNotFound
	}

	stored.EndTime = entry.EndTime
	stored.Duration = entry.Duration
	return nil
}

func (r *fakeTimeEntryRepo) List(ctx context.Context, filter ports.TimeEntryFilter) ([]*entities.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.TimeEntry
	for _, e := range r.entries {
		if filter.UserID != nil && e.UserID != *filter.UserID {
			continue
		}
		if filter.TaskID != nil && e.TaskID != *filter.TaskID {
			continue
		}
		if filter.StartedAt != nil && e.StartTime.Before(*filter.StartedAt) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (r *fakeTimeEntryRepo) GetTaskEntries(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeEntry, error) {
	return r.List(ctx, ports.TimeEntryFilter{TaskID: &taskID})
}

func (r *fakeTimeEntryRepo) GetOpenEntries(ctx context.Context, userID uuid.UUID) ([]*entities.TimeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.TimeEntry
	for _, e := range r.entries {
		if e.UserID == userID && e.EndTime == nil {
			clone := *e
			out = append(out, &clone)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

// seed inserts an entry bypassing the open-entry constraint, to set up
// states the constraint would normally forbid.
func (r *fakeTimeEntryRepo) seed(entry *entities.TimeEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *entry
	r.entries[entry.ID] = &clone
}

func (r *fakeTimeEntryRepo) openCount(userID uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, e := range r.entries {
		if e.UserID == userID && e.EndTime == nil {
			count++
		}
	}
	return count
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*entities.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}

	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}

	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.Task
	for _, t := range r.tasks {
		if filter.ProjectID != nil && (t.ProjectID == nil || *t.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeTaskRepo) ListStatuses(ctx context.Context, userID uuid.UUID) ([]entities.TaskStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var statuses []entities.TaskStatus
	for _, t := range r.tasks {
		if t.CreatedBy != userID && (t.AssigneeID == nil || *t.AssigneeID != userID) {
			continue
		}
		statuses = append(statuses, t.Status)
	}
	return statuses, nil
}

type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*entities.User
	workspaces *fakeWorkspaceRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

// Provision mirrors the transactional contract of the real repository:
// either all three rows land or none do.
func (r *fakeUserRepo) Provision(ctx context.Context, user *entities.User, workspace *entities.Workspace, member *entities.WorkspaceMember) error {
	if r.workspaces != nil && r.workspaces.addMemberErr != nil {
		return r.workspaces.addMemberErr
	}

	if err := r.Create(ctx, user); err != nil {
		return err
	}
	if r.workspaces == nil {
		return nil
	}
	if err := r.workspaces.Create(ctx, workspace); err != nil {
		return err
	}
	return r.workspaces.AddMember(ctx, member)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}

	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

type fakeWorkspaceRepo struct {
	mu           sync.Mutex
	workspaces   map[uuid.UUID]*entities.Workspace
	members      []*entities.WorkspaceMember
	addMemberErr error
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{workspaces: make(map[uuid.UUID]*entities.Workspace)}
}

func (r *fakeWorkspaceRepo) Create(ctx context.Context, workspace *entities.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *workspace
	r.workspaces[workspace.ID] = &clone
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	workspace, ok := r.workspaces[id]
	if !ok {
		return nil, entities.ErrWorkspaceNotFound
	}

	clone := *workspace
	return &clone, nil
}

func (r *fakeWorkspaceRepo) GetUserWorkspace(ctx context.Context, userID uuid.UUID) (*entities.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.members {
		if m.UserID == userID {
			if ws, ok := r.workspaces[m.WorkspaceID]; ok {
				clone := *ws
				return &clone, nil
			}
		}
	}
	return nil, entities.ErrWorkspaceNotFound
}

func (r *fakeWorkspaceRepo) AddMember(ctx context.Context, member *entities.WorkspaceMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.addMemberErr != nil {
		return r.addMemberErr
	}

	clone := *member
	r.members = append(r.members, &clone)
	return nil
}

type fakeAuthRepo struct {
	mu     sync.Mutex
	tokens map[string]*ports.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{tokens: make(map[string]*ports.RefreshToken)}
}

func (r *fakeAuthRepo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[tokenHash] = &ports.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeAuthRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, entities.ErrUnauthorized
	}

	clone := *token
	return &clone, nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return entities.ErrUnauthorized
	}
	if token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *fakeAuthRepo) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			revoked := now
			t.RevokedAt = &revoked
		}
	}
	return nil
}
