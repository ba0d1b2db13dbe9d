package chat

import "sync"

// Manager hands out one Session per user, creating and opening it on first
// use. The durable store stays exclusively owned by the sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	deps     Deps
}

func NewManager(deps Deps) *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
		deps:     deps,
	}
}

func (m *Manager) Get(userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}
	s := NewSession(userID, m.deps)
	if err := s.Open(); err != nil {
		return nil, err
	}
	m.sessions[userID] = s
	return s, nil
}
