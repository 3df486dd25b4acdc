package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
)

// taskDocument tolerates both string and ObjectID keys since tasks may be
// inserted by other tools.
type taskDocument struct {
	ID          interface{} `bson:"_id"`
	Title       string      `bson:"title"`
	Description string      `bson:"description,omitempty"`
	Completed   bool        `bson:"completed"`
	CreatedAt   time.Time   `bson:"createdAt"`
}

func (d taskDocument) toModel() *models.Task {
	var id string
	switch v := d.ID.(type) {
	case bson.ObjectID:
		id = v.Hex()
	case string:
		id = v
	default:
		id = fmt.Sprint(v)
	}
	return &models.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt,
	}
}

// TaskRepository implements repositories.TaskRepository on MongoDB.
type TaskRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(coll *mongo.Collection, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{coll: coll, logger: logger}
}

// List returns every task, oldest first.
func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var docs []taskDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}

	tasks := make([]*models.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toModel())
	}
	return tasks, nil
}

// Seed upserts each task by id without overwriting existing ones.
func (r *TaskRepository) Seed(ctx context.Context, tasks []*models.Task) error {
	for _, t := range tasks {
		update := bson.D{{Key: "$setOnInsert", Value: bson.D{
			{Key: "title", Value: t.Title},
			{Key: "description", Value: t.Description},
			{Key: "completed", Value: t.Completed},
			{Key: "createdAt", Value: t.CreatedAt},
		}}}
		_, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: t.ID}}, update, options.UpdateOne().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("failed to seed task %s: %w", t.ID, err)
		}
	}
	r.logger.Debug("tasks seeded", zap.Int("count", len(tasks)))
	return nil
}
