package repositories

import (
	"context"
	"errors"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a create collides with a unique key.
	ErrDuplicate = errors.New("duplicate key")
)

// AccountRepository handles account data operations.
// Implementations must enforce uniqueness of ProviderID at the storage layer.
type AccountRepository interface {
	// Create inserts the account and sets its LocalID.
	// Returns ErrDuplicate if an account with the same ProviderID exists.
	Create(ctx context.Context, account *models.Account) error

	// GetByLocalID retrieves an account by its store-assigned id.
	// Malformed ids are reported as ErrNotFound.
	GetByLocalID(ctx context.Context, localID string) (*models.Account, error)

	// GetByProviderID retrieves an account by the provider subject.
	GetByProviderID(ctx context.Context, providerID string) (*models.Account, error)
}

// TaskRepository handles task data operations
type TaskRepository interface {
	// List returns every stored task.
	List(ctx context.Context) ([]*models.Task, error)

	// Seed inserts tasks; used for bootstrapping demo data.
	Seed(ctx context.Context, tasks []*models.Task) error
}

// Repositories holds all repository instances
type Repositories struct {
	Accounts AccountRepository
	Tasks    TaskRepository
}

// Store is an opened storage backend.
type Store interface {
	Repositories() *Repositories
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
