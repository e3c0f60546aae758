package models

import "time"

// Account is the login identity. It is stored as a revisioned document;
// Rev is maintained by the repository and must round-trip untouched
// between Get and Save.
//
// The json tags describe the persisted document, so the hash fields are
// serialized. Handlers must never write an Account to a response body —
// they return Profile() instead.
type Account struct {
	ID            string    `json:"id"`
	Rev           int64     `json:"-"`
	AccountName   string    `json:"account_name"`
	PasswordHash  string    `json:"password_hash"`
	Boats         []string  `json:"boats,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Reset state: both fields are set while a password reset is pending
	// and cleared together. Only the hash of the token is ever stored.
	ResetTokenHash string     `json:"reset_token_hash,omitempty"`
	ResetTimeout   *time.Time `json:"reset_timeout,omitempty"`

	// Pending email verification token, empty once confirmed.
	VerifyToken        string     `json:"verify_token,omitempty"`
	VerifyTokenExpires *time.Time `json:"verify_token_expires,omitempty"`
}

// ResetPending reports whether a password reset has been requested and
// not yet consumed or overwritten.
func (a *Account) ResetPending() bool {
	return a.ResetTokenHash != "" && a.ResetTimeout != nil
}

// ClearReset drops the pending reset state (token consumed or overwritten).
func (a *Account) ClearReset() {
	a.ResetTokenHash = ""
	a.ResetTimeout = nil
}

// HasBoat reports set membership without touching the slice.
func (a *Account) HasBoat(boatID string) bool {
	for _, b := range a.Boats {
		if b == boatID {
			return true
		}
	}
	return false
}

// AccountProfileResponse is the outward view of an account. No hashes,
// no tokens.
type AccountProfileResponse struct {
	ID            string    `json:"id"`
	AccountName   string    `json:"account_name"`
	Boats         []string  `json:"boats"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (a *Account) Profile() *AccountProfileResponse {
	boats := a.Boats
	if boats == nil {
		boats = []string{}
	}
	return &AccountProfileResponse{
		ID:            a.ID,
		AccountName:   a.AccountName,
		Boats:         boats,
		EmailVerified: a.EmailVerified,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
