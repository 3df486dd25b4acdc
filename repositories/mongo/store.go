// Package mongo implements the repositories on MongoDB. Accounts live in the
// "users" collection with a unique index on providerId; tasks live in "tasks".
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/config"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
)

const (
	defaultDatabase   = "skillhub"
	accountCollection = "users"
	taskCollection    = "tasks"
)

// Store owns the client and hands out repositories bound to one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// Open connects to MongoDB, verifies the connection and ensures indexes.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Store, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URL).
		SetMaxPoolSize(uint64(cfg.MaxOpenConns)).
		SetTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{
		client: client,
		db:     client.Database(DatabaseName(cfg.URL)),
		logger: logger,
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info("mongodb connection established",
		zap.String("connection", cfg.LogString()),
		zap.String("database", s.db.Name()))
	return s, nil
}

// EnsureIndexes creates the unique providerId index if it is missing.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(accountCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "providerId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_provider_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create providerId index: %w", err)
	}
	return nil
}

// Repositories creates all repository instances
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Accounts: NewAccountRepository(s.db.Collection(accountCollection), s.logger),
		Tasks:    NewTaskRepository(s.db.Collection(taskCollection), s.logger),
	}
}

// HealthCheck pings the primary.
func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb health check failed: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	s.logger.Info("closing mongodb connection")
	return s.client.Disconnect(ctx)
}

// DatabaseName extracts the database from a connection string, falling back
// to "skillhub" when the URL names none.
func DatabaseName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultDatabase
}
