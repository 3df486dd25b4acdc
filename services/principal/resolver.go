// Package principal maps provider identities to local accounts and session
// references back to accounts.
package principal

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/repositories"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/services"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/utils"
)

// Resolver resolves provider profiles and session references to accounts.
type Resolver struct {
	accounts repositories.AccountRepository
	timeout  time.Duration
	logger   *zap.Logger
}

// NewResolver creates a resolver whose store calls are each bounded by timeout.
func NewResolver(accounts repositories.AccountRepository, timeout time.Duration, logger *zap.Logger) *Resolver {
	return &Resolver{
		accounts: accounts,
		timeout:  timeout,
		logger:   logger,
	}
}

// ResolveOrCreate returns the account for profile.ProviderID, creating it on
// first sight. Existing accounts are returned unchanged: name and email are
// not refreshed. A duplicate-key error on create means a concurrent login won
// the race, so the lookup is retried once.
func (r *Resolver) ResolveOrCreate(ctx context.Context, profile models.ProviderProfile) (*models.Account, error) {
	if err := utils.ValidateStruct(profile); err != nil {
		return nil, services.WrapProvider(services.ErrInvalidProfile.Message, err)
	}

	acct, err := r.findByProvider(ctx, profile.ProviderID)
	if err == nil {
		return acct, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, services.WrapStore("failed to look up account", err)
	}

	acct = models.NewAccount(profile)
	err = r.create(ctx, acct)
	switch {
	case err == nil:
		r.logger.Info("account created", zap.String("local_id", acct.LocalID))
		return acct, nil
	case errors.Is(err, repositories.ErrDuplicate):
		r.logger.Debug("account created concurrently, retrying lookup")
		existing, lookupErr := r.findByProvider(ctx, profile.ProviderID)
		if lookupErr != nil {
			return nil, services.WrapStore("failed to look up account after duplicate create", lookupErr)
		}
		return existing, nil
	default:
		return nil, services.WrapStore("failed to create account", err)
	}
}

// Materialize returns the session reference for an account.
func (r *Resolver) Materialize(acct *models.Account) (models.SessionReference, error) {
	if acct == nil || acct.LocalID == "" {
		return models.SessionReference{}, services.WrapInternal("cannot materialize session for unsaved account", nil)
	}
	return acct.Reference(), nil
}

// Rehydrate loads the account a session reference points at. An empty,
// unknown or malformed reference yields ErrAbsentPrincipal; store failures
// yield a store error.
func (r *Resolver) Rehydrate(ctx context.Context, ref models.SessionReference) (*models.Account, error) {
	if ref.IsZero() {
		return nil, services.ErrAbsentPrincipal
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	acct, err := r.accounts.GetByLocalID(ctx, ref.LocalID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrAbsentPrincipal
		}
		return nil, services.WrapStore("failed to load account", err)
	}
	return acct, nil
}

func (r *Resolver) findByProvider(ctx context.Context, providerID string) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.accounts.GetByProviderID(ctx, providerID)
}

func (r *Resolver) create(ctx context.Context, acct *models.Account) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.accounts.Create(ctx, acct)
}
