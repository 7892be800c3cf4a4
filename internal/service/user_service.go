package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/forgiv/bloggy-server/internal/auth"
	"github.com/forgiv/bloggy-server/internal/model"
	"github.com/forgiv/bloggy-server/internal/repository"
)

// RegisterInput carries a validated registration body.
type RegisterInput struct {
	Username string
	Password string
	Blog     string
}

// UserService exposes domain operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Profile(ctx context.Context, username string) (*model.Profile, error)
	PostsByUsername(ctx context.Context, username string) ([]model.Post, error)
}

type userService struct {
	users  repository.UserRepository
	posts  repository.PostRepository
	hasher auth.PasswordHasher
	log    logrus.FieldLogger
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository, posts repository.PostRepository, hasher auth.PasswordHasher, log logrus.FieldLogger) UserService {
	return &userService{users: users, posts: posts, hasher: hasher, log: log}
}

// Register hashes the password and stores the user. The blog name is stored trimmed.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		PasswordHash: hashed,
		Blog:         strings.TrimSpace(in.Blog),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *userService) Profile(ctx context.Context, username string) (*model.Profile, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// PostsByUsername lists a user's posts, newest first.
func (s *userService) PostsByUsername(ctx context.Context, username string) ([]model.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.posts.ListByUser(ctx, user.ID)
}
