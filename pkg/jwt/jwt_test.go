package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	SetSecret("test-secret")
	id := uuid.New()
	group := uuid.New()

	token, err := GenerateToken(id, "host01", "Host Satu", "staff_host_live", &group, "v1")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != id || claims.Username != "host01" || claims.Role != "staff_host_live" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.GroupID == nil || *claims.GroupID != group {
		t.Fatalf("group claim = %v", claims.GroupID)
	}
	if claims.TokenVersion != "v1" {
		t.Fatalf("token version = %q", claims.TokenVersion)
	}
}

func TestValidateRejects(t *testing.T) {
	SetSecret("test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredToken, _ := expired.SignedString(GetSecretKey())

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: uuid.New()})
	foreignToken, _ := foreign.SignedString([]byte("another-secret"))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not.a.token", ErrInvalidToken},
		{"expired", expiredToken, ErrInvalidToken},
		{"wrong secret", foreignToken, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}
