package models

import (
	"time"
)

// Account is the durable local record for a user signed in through LinkedIn.
// LocalID is assigned by the store on creation. DisplayName and Email are a
// snapshot taken at first login and are not refreshed afterwards.
type Account struct {
	LocalID     string    `json:"localId"`
	ProviderID  string    `json:"providerId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"-"`
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}

// NewAccount builds an unsaved account from a provider profile.
func NewAccount(profile ProviderProfile) *Account {
	return &Account{
		ProviderID:  profile.ProviderID,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		CreatedAt:   time.Now().UTC(),
	}
}

// Reference returns the session pointer for the account.
func (a *Account) Reference() SessionReference {
	return SessionReference{LocalID: a.LocalID}
}

// ProviderProfile is the normalized identity returned by the identity provider
// after a successful exchange.
type ProviderProfile struct {
	ProviderID  string `json:"providerId" validate:"required,max=255"`
	DisplayName string `json:"displayName" validate:"max=255"`
	Email       string `json:"email" validate:"omitempty,email,max=320"`
}

// SessionReference is the only value persisted in the browser session.
type SessionReference struct {
	LocalID string `json:"localId"`
}

// IsZero reports whether the reference points at nothing.
func (r SessionReference) IsZero() bool {
	return r.LocalID == ""
}
