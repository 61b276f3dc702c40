package memory

import (
	"context"
	"sync"

	"github.com/kiselevME/tictactoe-bot/internal/apperror"
	"github.com/kiselevME/tictactoe-bot/internal/entity"
)

// SessionStore keeps sessions in process memory. Callers always get copies.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entity.Session),
	}
}

func (s *SessionStore) CreateOrUpdate(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	s.sessions[session.ID] = &cp
	return nil
}

func (s *SessionStore) GetByID(_ context.Context, id string) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	cp := *sess
	return &cp, nil
}

// Update holds the store lock while fn runs, so updates never interleave.
func (s *SessionStore) Update(_ context.Context, id string, fn func(session *entity.Session) error) (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperror.ErrSessionNotFound
	}

	cp := *sess
	if err := fn(&cp); err != nil {
		return nil, err
	}

	stored := cp
	s.sessions[id] = &stored
	return &cp, nil
}

func (s *SessionStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}
