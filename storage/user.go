package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"pagecraft/models"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for new admin accounts
const PasswordCost = 10

var (
	ErrEmptyCredentials = errors.New("username and password must not be empty")
	ErrUserExists       = errors.New("username already exists")
	ErrUserNotFound     = errors.New("user not found")
)

// UserStore manages users.json. The HTTP side only reads it.
type UserStore struct {
	path string
	mu   sync.RWMutex
}

// NewUserStore returns a store backed by path. It does not touch the disk.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Init creates the data directory and an empty user list if absent
func (s *UserStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return EnsureJSON(s.path, models.UserList{Users: []models.User{}})
}

// List returns every stored user; an unreadable file reads as no users
func (s *UserStore) List() models.UserList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

// Find looks a user up by exact username match
func (s *UserStore) Find(username string) (models.User, error) {
	user, ok := s.List().Find(username)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// Create hashes password and appends a new user. Empty input and duplicate
// usernames are rejected.
func (s *UserStore) Create(username, password string) (models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return models.User{}, ErrEmptyCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load()
	if _, exists := list.Find(username); exists {
		return models.User{}, fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Username: username, PasswordHash: string(hash)}
	list.Users = append(list.Users, user)

	if err := WriteJSON(s.path, list); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// load reads users.json (must be called with lock held)
func (s *UserStore) load() models.UserList {
	list := ReadJSON(s.path, models.UserList{})
	if list.Users == nil {
		list.Users = []models.User{}
	}
	return list
}
