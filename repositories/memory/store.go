// Package memory implements the repositories in process memory. It backs
// development runs and tests; data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
)

// Store is an in-memory repositories.Store.
type Store struct {
	accounts *AccountRepository
	tasks    *TaskRepository
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: NewAccountRepository(),
		tasks:    NewTaskRepository(),
	}
}

// Repositories returns the repository set backed by this store.
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Accounts: s.accounts,
		Tasks:    s.tasks,
	}
}

// HealthCheck always succeeds.
func (s *Store) HealthCheck(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close(context.Context) error { return nil }

// AccountRepository keeps accounts in maps keyed by local and provider id.
type AccountRepository struct {
	mu         sync.RWMutex
	byLocalID  map[string]models.Account
	byProvider map[string]string // providerID -> localID
}

// NewAccountRepository returns an empty account repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byLocalID:  map[string]models.Account{},
		byProvider: map[string]string{},
	}
}

// Create stores the account, enforcing one account per provider id.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byProvider[account.ProviderID]; exists {
		return repositories.ErrDuplicate
	}

	account.LocalID = uuid.NewString()
	r.byLocalID[account.LocalID] = *account
	r.byProvider[account.ProviderID] = account.LocalID
	return nil
}

// GetByLocalID returns a copy of the stored account.
func (r *AccountRepository) GetByLocalID(ctx context.Context, localID string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	acct, ok := r.byLocalID[localID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &acct, nil
}

// GetByProviderID returns a copy of the stored account.
func (r *AccountRepository) GetByProviderID(ctx context.Context, providerID string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	localID, ok := r.byProvider[providerID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	acct := r.byLocalID[localID]
	return &acct, nil
}

// Count returns the number of stored accounts.
func (r *AccountRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byLocalID)
}

// TaskRepository keeps tasks in a map keyed by id.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

// NewTaskRepository returns a task repository holding the given tasks.
func NewTaskRepository(seed ...*models.Task) *TaskRepository {
	r := &TaskRepository{tasks: map[string]models.Task{}}
	for _, t := range seed {
		r.tasks[t.ID] = *t
	}
	return r
}

// List returns all tasks ordered by creation time.
func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		task := t
		out = append(out, &task)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Seed inserts or replaces the given tasks.
func (r *TaskRepository) Seed(ctx context.Context, tasks []*models.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tasks {
		r.tasks[t.ID] = *t
	}
	return nil
}
