package session

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"storefront/internal/domain"
	staterepo "storefront/internal/repository/state"
)

// Service caches the remote authentication result per visitor. It performs
// no server-side validation of the token; role checks made on top of it are
// view-routing convenience only, never an authorization boundary.
type Service struct {
	repo   staterepo.Repository
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]*visitorSession
}

type visitorSession struct {
	mu      sync.Mutex
	session domain.Session
}

func New(repo staterepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:     repo,
		logger:   logger,
		sessions: make(map[string]*visitorSession),
	}
}

// Login overwrites any prior session atomically; isLoggedIn is derived from
// both user and token being set.
func (s *Service) Login(ctx context.Context, visitorID string, user domain.User, token string) domain.Session {
	vs := s.open(ctx, visitorID)
	vs.mu.Lock()
	defer vs.mu.Unlock()

	u := user
	vs.session = domain.Session{
		User:       &u,
		Token:      token,
		IsLoggedIn: token != "",
	}
	s.persist(ctx, visitorID, vs.session)
	return vs.session
}

// Logout clears user, token, and the derived flag, and persists the cleared
// state so a reload cannot resurrect the prior session.
func (s *Service) Logout(ctx context.Context, visitorID string) domain.Session {
	vs := s.open(ctx, visitorID)
	vs.mu.Lock()
	defer vs.mu.Unlock()

	vs.session = domain.Session{}
	s.persist(ctx, visitorID, vs.session)
	return vs.session
}

// Get returns the current session for the visitor.
func (s *Service) Get(ctx context.Context, visitorID string) domain.Session {
	vs := s.open(ctx, visitorID)
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.session
}

func (s *Service) persist(ctx context.Context, visitorID string, sess domain.Session) {
	if err := s.repo.Save(ctx, visitorID, staterepo.SlotAuth, sess); err != nil {
		s.logger.Printf("session: persist visitor=%s error=%v", visitorID, err)
	}
}

func (s *Service) open(ctx context.Context, visitorID string) *visitorSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vs, ok := s.sessions[visitorID]; ok {
		return vs
	}

	vs := &visitorSession{}
	if err := s.repo.Load(ctx, visitorID, staterepo.SlotAuth, &vs.session); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Printf("session: load visitor=%s error=%v", visitorID, err)
		}
		vs.session = domain.Session{}
	}
	// A stored session is only considered logged in when both halves survived.
	if vs.session.User == nil || vs.session.Token == "" {
		vs.session.IsLoggedIn = false
	}
	s.sessions[visitorID] = vs
	return vs
}
