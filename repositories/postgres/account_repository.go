package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
)

// AccountRepository implements repositories.AccountRepository on Postgres.
type AccountRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the account under a fresh UUID.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, provider_id, display_name, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	id := uuid.NewString()
	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		id,
		account.ProviderID,
		account.DisplayName,
		account.Email,
		account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	account.LocalID = id
	r.logger.Debug("account created", zap.String("local_id", id))
	return nil
}

// GetByLocalID retrieves an account by id.
func (r *AccountRepository) GetByLocalID(ctx context.Context, localID string) (*models.Account, error) {
	id, err := uuid.Parse(localID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}

	query := `
		SELECT id, provider_id, display_name, email, created_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id.String())
}

// GetByProviderID retrieves an account by provider subject.
func (r *AccountRepository) GetByProviderID(ctx context.Context, providerID string) (*models.Account, error) {
	query := `
		SELECT id, provider_id, display_name, email, created_at
		FROM accounts
		WHERE provider_id = $1
	`
	return r.scanOne(ctx, query, providerID)
}

func (r *AccountRepository) scanOne(ctx context.Context, query string, arg string) (*models.Account, error) {
	acct := &models.Account{}
	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&acct.LocalID,
		&acct.ProviderID,
		&acct.DisplayName,
		&acct.Email,
		&acct.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acct, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
