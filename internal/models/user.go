// Package models defines core domain types
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KYCStatus tracks identity verification progress
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCVerified KYCStatus = "verified"
	KYCRejected KYCStatus = "rejected"
)

// User represents an individual investor account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	KYCStatus    KYCStatus `json:"kyc_status"`

	// Progression state. The spending limit and tier move together;
	// an active cooldown blocks new investments until it expires.
	MaxSpendLimit decimal.Decimal `json:"max_spend_limit"`
	CurrentTier   int             `json:"current_tier"`
	CooldownUntil *time.Time      `json:"cooldown_until,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartingSpendLimit is every new account's initial limit
var StartingSpendLimit = decimal.NewFromInt(35)

// NewUser creates a new user with generated ID, starting limit and timestamps
func NewUser(email, firstName, lastName, phone, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:            uuid.New(),
		Email:         email,
		FirstName:     firstName,
		LastName:      lastName,
		Phone:         phone,
		PasswordHash:  passwordHash,
		KYCStatus:     KYCPending,
		MaxSpendLimit: StartingSpendLimit,
		CurrentTier:   1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsVerified reports whether the user has completed KYC
func (u *User) IsVerified() bool {
	return u.KYCStatus == KYCVerified
}

// Session represents an active user session
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().UTC().After(s.ExpiresAt)
}
