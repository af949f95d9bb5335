package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/repository"
	"github.com/google/uuid"
)

type authService struct {
	sessions repository.AuthSessionRepo
	ttl      time.Duration
	now      func() time.Time
	observer UseCaseObserver
}

// NewAuthService gates the CLI behind a stored session. A nil now uses the
// wall clock.
func NewAuthService(sessions repository.AuthSessionRepo, ttl time.Duration, now func() time.Time, observers ...UseCaseObserver) AuthService {
	return &authService{
		sessions: sessions,
		ttl:      ttl,
		now:      nowOrDefault(now),
		observer: combineObservers(observers),
	}
}

func (s *authService) Login(ctx context.Context, user string) (session *domain.AuthSession, err error) {
	startedAt := time.Now().UTC()
	user = strings.TrimSpace(user)
	fields := map[string]any{"user": user}
	defer func() {
		observeUseCase(ctx, s.observer, "login", startedAt, fields, err)
	}()

	if user == "" {
		return nil, ErrEmptyUser
	}
	now := s.now()
	if _, err = s.sessions.DeleteExpired(ctx, now); err != nil {
		return nil, err
	}

	existing, err := s.sessions.GetLatest(ctx)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w as %s", ErrAlreadySignedIn, existing.User)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	session = &domain.AuthSession{
		Token:     uuid.New().String(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err = s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context) (session *domain.AuthSession, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observeUseCase(ctx, s.observer, "logout", startedAt, fields, err)
	}()

	session, err = s.latest(ctx)
	if err != nil {
		return nil, err
	}
	fields["user"] = session.User
	if err = s.sessions.Delete(ctx, session.Token); err != nil {
		return nil, err
	}
	return session, nil
}

// Current returns the live session. An expired session is reported as
// ErrSessionExpired and left in place until the next login clears it.
func (s *authService) Current(ctx context.Context) (*domain.AuthSession, error) {
	session, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, fmt.Errorf("%w for %s", ErrSessionExpired, session.User)
	}
	return session, nil
}

func (s *authService) latest(ctx context.Context) (*domain.AuthSession, error) {
	session, err := s.sessions.GetLatest(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}
