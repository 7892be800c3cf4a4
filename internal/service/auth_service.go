package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/forgiv/bloggy-server/internal/auth"
	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/metrics"
	"github.com/forgiv/bloggy-server/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Refresh(ctx context.Context, claims *auth.Claims) (string, error)
	Identify(ctx context.Context, claims *auth.Claims) (auth.Identity, error)
}

type authService struct {
	users   repository.UserRepository
	jwt     *auth.JWTService
	hasher  auth.PasswordHasher
	limiter auth.LoginLimiter
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

// NewAuthService creates a new authentication service. A nil limiter allows
// every attempt and nil metrics record nothing.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	hasher auth.PasswordHasher,
	limiter auth.LoginLimiter,
	m *metrics.Metrics,
	log logrus.FieldLogger,
) AuthService {
	if limiter == nil {
		limiter = auth.NoopLoginLimiter{}
	}
	return &authService{
		users:   users,
		jwt:     jwtService,
		hasher:  hasher,
		limiter: limiter,
		metrics: m,
		log:     log,
	}
}

// Login verifies the credentials and issues a token embedding the sanitized user.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperr.BadRequest()
	}
	if !s.limiter.Allow(ctx, username) {
		s.metrics.RecordLogin(metrics.LoginThrottled)
		s.log.WithField("username", username).Warn("login throttled")
		return "", apperr.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		s.limiter.RecordFailure(ctx, username)
		s.metrics.RecordLogin(metrics.LoginUnknownUser)
		return "", apperr.ErrUnknownUser
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.limiter.RecordFailure(ctx, username)
		s.metrics.RecordLogin(metrics.LoginBadPassword)
		return "", apperr.ErrBadPassword
	}

	s.limiter.Reset(ctx, username)
	token, err := s.jwt.Issue(auth.UserClaim{
		ID:       user.ID.String(),
		Username: user.Username,
		Blog:     user.Blog,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	s.metrics.RecordLogin(metrics.LoginSuccess)
	s.log.WithField("user_id", user.ID).Info("user logged in")
	return token, nil
}

// Refresh re-issues a verified token with a later expiry.
func (s *authService) Refresh(_ context.Context, claims *auth.Claims) (string, error) {
	if claims == nil {
		return "", apperr.ErrUnauthenticated
	}
	token, err := s.jwt.Refresh(claims)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	return token, nil
}

// Identify resolves the caller of a verified token. Tokens that carry only a
// username are looked up; an unknown username is unauthenticated.
func (s *authService) Identify(ctx context.Context, claims *auth.Claims) (auth.Identity, error) {
	if claims == nil {
		return auth.Identity{}, apperr.ErrUnauthenticated
	}
	if id, err := uuid.Parse(claims.User.ID); err == nil {
		return auth.Identity{UserID: id, Username: claims.Username()}, nil
	}

	user, err := s.users.FindByUsername(ctx, claims.Username())
	if errors.Is(err, apperr.ErrNotFound) {
		return auth.Identity{}, apperr.ErrUnauthenticated
	}
	if err != nil {
		return auth.Identity{}, fmt.Errorf("find user: %w", err)
	}
	return auth.Identity{UserID: user.ID, Username: user.Username}, nil
}
