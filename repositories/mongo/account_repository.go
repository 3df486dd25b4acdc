package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
)

type accountDocument struct {
	ID          bson.ObjectID `bson:"_id"`
	ProviderID  string        `bson:"providerId"`
	DisplayName string        `bson:"name"`
	Email       string        `bson:"email"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

func (d accountDocument) toModel() *models.Account {
	return &models.Account{
		LocalID:     d.ID.Hex(),
		ProviderID:  d.ProviderID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		CreatedAt:   d.CreatedAt,
	}
}

// AccountRepository implements repositories.AccountRepository on MongoDB.
type AccountRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(coll *mongo.Collection, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{coll: coll, logger: logger}
}

// Create inserts the account under a new ObjectID.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	doc := accountDocument{
		ID:          bson.NewObjectID(),
		ProviderID:  account.ProviderID,
		DisplayName: account.DisplayName,
		Email:       account.Email,
		CreatedAt:   account.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicate
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	account.LocalID = doc.ID.Hex()
	r.logger.Debug("account created", zap.String("local_id", account.LocalID))
	return nil
}

// GetByLocalID looks the account up by its ObjectID hex.
func (r *AccountRepository) GetByLocalID(ctx context.Context, localID string) (*models.Account, error) {
	id, err := bson.ObjectIDFromHex(localID)
	if err != nil {
		return nil, repositories.ErrNotFound
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// GetByProviderID looks the account up by provider subject.
func (r *AccountRepository) GetByProviderID(ctx context.Context, providerID string) (*models.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "providerId", Value: providerID}})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.D) (*models.Account, error) {
	var doc accountDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return doc.toModel(), nil
}
