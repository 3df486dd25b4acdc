package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
)

// TaskRepository implements repositories.TaskRepository on Postgres.
type TaskRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all tasks, oldest first.
func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	query := `
		SELECT id, title, description, completed, created_at
		FROM tasks
		ORDER BY created_at ASC, id ASC
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task := &models.Task{}
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// Seed inserts tasks in a single transaction, skipping ids that already exist.
func (r *TaskRepository) Seed(ctx context.Context, tasks []*models.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, completed, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	return r.db.InTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.db)
		for _, t := range tasks {
			if _, err := exec.ExecContext(ctx, query, t.ID, t.Title, t.Description, t.Completed, t.CreatedAt); err != nil {
				return fmt.Errorf("failed to seed task %s: %w", t.ID, err)
			}
		}
		r.logger.Debug("tasks seeded", zap.Int("count", len(tasks)))
		return nil
	})
}
