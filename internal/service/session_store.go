package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"havenchat/internal/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore mantiene las sesiones activas en memoria. Nada persiste:
// al terminar el proceso se descartan todas las conversaciones.
type SessionStore struct {
	mu       sync.RWMutex
	engines  map[string]*SessionEngine
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		engines:  make(map[string]*SessionEngine),
		sessions: make(map[string]domain.Session),
	}
}

// Create registra un motor nuevo y devuelve su descriptor de sesión.
func (s *SessionStore) Create(engine *SessionEngine) domain.Session {
	session := domain.Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.engines[session.ID] = engine
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// Get recupera el motor de una sesión existente.
func (s *SessionStore) Get(sessionID string) (*SessionEngine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.engines[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return engine, nil
}

// Remove descarta una sesión y su log.
func (s *SessionStore) Remove(sessionID string) {
	s.mu.Lock()
	delete(s.engines, sessionID)
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Count devuelve la cantidad de sesiones vivas.
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.engines)
}
