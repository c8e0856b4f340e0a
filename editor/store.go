package editor

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("editor session not found")

// Session ties an Editor to the id the browser uses to address it
type Session struct {
	ID         string
	Editor     *Editor
	CreatedAt  time.Time
	LastAccess time.Time
}

// Store keeps editor sessions in memory. When full, the least recently used
// session is evicted. Sessions are independent: saves are last-writer-wins.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	maxSessions int
}

// NewStore creates a store holding at most maxSessions editors
func NewStore(maxSessions int) *Store {
	if maxSessions <= 0 {
		maxSessions = 1
	}
	return &Store{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Add registers ed under a fresh id
func (s *Store) Add(ed *Editor) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		var oldestID string
		var oldest time.Time
		for id, sess := range s.sessions {
			if oldestID == "" || sess.LastAccess.Before(oldest) {
				oldestID = id
				oldest = sess.LastAccess
			}
		}
		delete(s.sessions, oldestID)
	}

	now := time.Now()
	sess := &Session{
		ID:         uuid.New().String(),
		Editor:     ed,
		CreatedAt:  now,
		LastAccess: now,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns the session and refreshes its LastAccess
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.LastAccess = time.Now()
	return sess, nil
}

// Remove drops a session
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
