package utils

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "password1" {
		t.Fatal("password not hashed")
	}
	if !CheckPasswordHash("password1", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("password2", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestResetTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, hash, err := NewResetToken()
		if err != nil {
			t.Fatalf("token generation failed: %v", err)
		}
		if seen[token] {
			t.Fatal("duplicate token")
		}
		seen[token] = true
		if HashToken(token) != hash {
			t.Fatal("returned hash does not match the token")
		}
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "acc-1", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	id, err := ParseSessionToken("secret", token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id != "acc-1" {
		t.Fatalf("wrong account id %q", id)
	}

	if _, err := ParseSessionToken("other-secret", token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
	if _, err := ParseSessionToken("secret", token+"x"); err == nil {
		t.Fatal("tampered token accepted")
	}
}

func TestExpiredSessionToken(t *testing.T) {
	token, err := GenerateSessionToken("secret", "acc-1", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseSessionToken("secret", token); err == nil {
		t.Fatal("expired token accepted")
	}
}
