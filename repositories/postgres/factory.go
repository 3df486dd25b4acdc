package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/config"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
)

// Store owns the connection pool and hands out repositories bound to it.
type Store struct {
	db     *DB
	logger *zap.Logger
}

// Open connects to Postgres and bootstraps the schema.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	db, err := NewDB(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewStore(db, logger), nil
}

// NewStore wraps an already opened pool.
func NewStore(db *DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Repositories creates all repository instances
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Accounts: NewAccountRepository(s.db, s.logger),
		Tasks:    NewTaskRepository(s.db, s.logger),
	}
}

// HealthCheck checks the pool.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Close closes the pool.
func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
