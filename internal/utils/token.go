package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// NewResetToken draws 32 bytes from the CSPRNG and returns the URL-safe
// token together with the hash that gets persisted. The raw token leaves
// the process only inside the reset e-mail.
func NewResetToken() (token, tokenHash string, err error) {
	raw := make([]byte, 32)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}
	token = base64.RawURLEncoding.EncodeToString(raw)
	return token, HashToken(token), nil
}

// HashToken maps a raw token to its stored form.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
