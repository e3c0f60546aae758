package services

import "errors"

// Error taxonomy of the account layer. Everything here is recoverable
// and local to the calling request; repository.ErrConflict and
// repository.ErrNotFound pass through unchanged.
var (
	ErrAlreadyExists = errors.New("account name already taken")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("wrong account name or password")
	ErrTokenExpired  = errors.New("token expired")
	ErrWeakPassword  = errors.New("password too short")

	// ErrAmbiguous means more than one record matched a key that must be
	// unique. That is stored-data corruption and is surfaced, not
	// silently resolved.
	ErrAmbiguous = errors.New("multiple accounts match a unique key")
)
