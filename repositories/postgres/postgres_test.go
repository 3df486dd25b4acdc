package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &DB{DB: sqlDB, logger: zap.NewNop()}, mock
}

var accountColumns = []string{"id", "provider_id", "display_name", "email", "created_at"}

func TestAccountRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns local id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())

		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(sqlmock.AnyArg(), "abc123", "Jane Doe", "jane@x.com", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		acct := models.NewAccount(models.ProviderProfile{ProviderID: "abc123", DisplayName: "Jane Doe", Email: "jane@x.com"})
		require.NoError(t, repo.Create(ctx, acct))

		_, err := uuid.Parse(acct.LocalID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())

		mock.ExpectExec("INSERT INTO accounts").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		acct := &models.Account{ProviderID: "abc123"}
		err := repo.Create(ctx, acct)

		assert.ErrorIs(t, err, repositories.ErrDuplicate)
		assert.Empty(t, acct.LocalID)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())

		mock.ExpectExec("INSERT INTO accounts").WillReturnError(errors.New("connection reset"))

		err := repo.Create(ctx, &models.Account{ProviderID: "abc123"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, repositories.ErrDuplicate)
		assert.Contains(t, err.Error(), "failed to create account")
	})
}

func TestAccountRepository_GetByProviderID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.NewString()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE provider_id").
			WithArgs("abc123").
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id, "abc123", "Jane Doe", "jane@x.com", created))

		acct, err := repo.GetByProviderID(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, &models.Account{LocalID: id, ProviderID: "abc123", DisplayName: "Jane Doe", Email: "jane@x.com", CreatedAt: created}, acct)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE provider_id").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err := repo.GetByProviderID(ctx, "missing")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT (.+) FROM accounts").WillReturnError(errors.New("boom"))

		_, err := repo.GetByProviderID(ctx, "abc123")
		require.Error(t, err)
		assert.NotErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestAccountRepository_GetByLocalID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id is not found without a query", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())

		_, err := repo.GetByLocalID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAccountRepository(db, zap.NewNop())
		id := uuid.NewString()

		mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(accountColumns).AddRow(id, "abc123", "Jane Doe", "", time.Now()))

		acct, err := repo.GetByLocalID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, acct.LocalID)
		assert.Equal(t, "abc123", acct.ProviderID)
	})
}

func TestTaskRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db, zap.NewNop())

		rows := sqlmock.NewRows([]string{"id", "title", "description", "completed", "created_at"}).
			AddRow("t1", "First", "", false, time.Now()).
			AddRow("t2", "Second", "desc", true, time.Now())
		mock.ExpectQuery("SELECT (.+) FROM tasks").WillReturnRows(rows)

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "First", tasks[0].Title)
		assert.True(t, tasks[1].Completed)
	})

	t.Run("empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db, zap.NewNop())

		mock.ExpectQuery("SELECT (.+) FROM tasks").
			WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "completed", "created_at"}))

		tasks, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})
}

func TestTaskRepository_Seed(t *testing.T) {
	ctx := context.Background()
	tasks := []*models.Task{models.NewTask("a", ""), models.NewTask("b", "")}

	t.Run("commits", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO tasks").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO tasks").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Seed(ctx, tasks))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTaskRepository(db, zap.NewNop())

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO tasks").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.Seed(ctx, tasks)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to seed task")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_HealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewStore(db, zap.NewNop())

		mock.ExpectPing()
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		assert.NoError(t, store.HealthCheck(context.Background()))
	})

	t.Run("ping fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		store := NewStore(db, zap.NewNop())

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		err := store.HealthCheck(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database health check failed")
	})
}

func TestDB_InitSchema(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS accounts").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.InitSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
