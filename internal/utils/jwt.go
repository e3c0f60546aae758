package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates the HS256 session JWT. The claims carry
// nothing but the account id and the expiry.
func GenerateSessionToken(secret, accountID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates the session JWT and extracts the account id.
func ParseSessionToken(secret, tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired session token")
	}
	accountID, ok := claims["account_id"].(string)
	if !ok || accountID == "" {
		return "", errors.New("invalid session payload")
	}
	return accountID, nil
}
