package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("s3cret", 42, "admin", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if time.Until(tok.Exp) <= 0 {
		t.Fatalf("expiry in the past: %v", tok.Exp)
	}
	claims, err := ParseAccessToken("s3cret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	good, _ := NewAccessToken("s3cret", 7, "user", time.Hour)
	expired, _ := NewAccessToken("s3cret", 7, "user", -time.Minute)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "7", "role": "admin", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	noRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("s3cret"))

	tests := []struct {
		name   string
		secret string
		raw    string
	}{
		{name: "Given a token signed with another secret When parsing Then rejects", secret: "other", raw: good.Token},
		{name: "Given an expired token When parsing Then rejects", secret: "s3cret", raw: expired.Token},
		{name: "Given an unsigned token When parsing Then rejects", secret: "s3cret", raw: none},
		{name: "Given a token without role When parsing Then rejects", secret: "s3cret", raw: noRole},
		{name: "Given garbage When parsing Then rejects", secret: "s3cret", raw: "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAccessToken(tt.secret, tt.raw); err != ErrInvalidToken {
				t.Errorf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("password stored in plain text")
	}
	if !VerifyPassword(hash, "hunter2") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "hunter3") {
		t.Error("wrong password accepted")
	}

	unset, err := HashPassword("hunter2", 0)
	if err != nil {
		t.Fatalf("HashPassword with unset cost: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(unset)); cost != bcrypt.DefaultCost {
		t.Errorf("unset cost hashed with %d, want %d", cost, bcrypt.DefaultCost)
	}
}
