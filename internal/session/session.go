package session

import (
	"errors"
	"sync"

	"stayfront/internal/domain/user"
)

var ErrNotLoggedIn = errors.New("session: not logged in")

// Session is the whole of the client's persisted state: the backend-issued
// credential plus the display values shown in the navigation header.
type Session struct {
	Token string    `json:"token"`
	Role  user.Role `json:"role"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// IsZero reports a logged-out state.
func (s Session) IsZero() bool { return s.Token == "" }

// Store persists exactly one session. Clear must remove everything at once;
// a half-cleared session is worse than none.
type Store interface {
	Save(s Session) error
	Load() (Session, error)
	Clear() error
}

// MemoryStore keeps the session in process memory, for tests and ephemeral
// runs.
type MemoryStore struct {
	mu      sync.Mutex
	current Session
	ok      bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current, m.ok = s, true
	return nil
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return Session{}, ErrNotLoggedIn
	}
	return m.current, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current, m.ok = Session{}, false
	return nil
}
