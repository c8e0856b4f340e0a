package auth

import (
	"errors"

	"pagecraft/config"
	"pagecraft/models"
	"pagecraft/utils"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown users and wrong passwords alike
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserFinder looks users up by exact username
type UserFinder interface {
	Find(username string) (models.User, error)
}

// Service verifies admin credentials and issues tokens
type Service struct {
	users  UserFinder
	tokens Tokens
}

// NewService creates an auth service
func NewService(users UserFinder, tokens Tokens) *Service {
	return &Service{users: users, tokens: tokens}
}

// NewTokens builds the token scheme selected by cfg.Auth.Mode
func NewTokens(cfg *config.Config) Tokens {
	if cfg.Auth.Mode == config.AuthSigned {
		return SignedTokens{Secret: []byte(cfg.Auth.Secret), TTL: cfg.Auth.TokenTTL}
	}
	return OpaqueTokens{}
}

// Login checks username/password against the stored bcrypt hash and returns a token
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.users.Find(username)
	if err != nil {
		utils.Log.WithField("username", username).Info("Login rejected: unknown user")
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		utils.Log.WithField("username", username).Info("Login rejected: password mismatch")
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.Username)
}

// Verify checks a token presented on a protected request
func (s *Service) Verify(token string) error {
	return s.tokens.Verify(token)
}
