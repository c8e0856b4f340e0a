package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenIssuer creates the token handed out at login
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// TokenVerifier decides whether a token presented on a protected request is acceptable
type TokenVerifier interface {
	Verify(token string) error
}

// Tokens issues and verifies admin tokens
type Tokens interface {
	TokenIssuer
	TokenVerifier
}

// OpaqueTokens encodes "username:unixMillis" in base64. Nothing is signed, and
// Verify accepts any non-empty value: presence of the header is the whole check.
type OpaqueTokens struct {
	Now func() time.Time
}

func (o OpaqueTokens) Issue(username string) (string, error) {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	raw := fmt.Sprintf("%s:%d", username, now().UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

func (o OpaqueTokens) Verify(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	return nil
}

// SignedTokens issues HS256 JWTs with an expiry. It is the opt-in hardened mode.
type SignedTokens struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (s SignedTokens) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s SignedTokens) Issue(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s SignedTokens) Verify(token string) error {
	if token == "" {
		return ErrMissingToken
	}

	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}
