package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/model"
	"github.com/forgiv/bloggy-server/internal/repository"
)

// PostInput carries a validated post creation body.
type PostInput struct {
	Title   string
	Content string
	Slug    string
}

// PostService manages the caller's posts.
type PostService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Post, error)
	Create(ctx context.Context, userID uuid.UUID, in PostInput) (*model.Post, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch model.PostPatch) (*model.Post, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type postService struct {
	posts repository.PostRepository
	log   logrus.FieldLogger
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, log logrus.FieldLogger) PostService {
	return &postService{posts: posts, log: log}
}

func (s *postService) List(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

// Get returns the post only if the caller owns it.
func (s *postService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Post, error) {
	return s.posts.FindOwned(ctx, id, userID)
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, in PostInput) (*model.Post, error) {
	post := &model.Post{
		UserID:  userID,
		Title:   in.Title,
		Content: strings.TrimSpace(in.Content),
		Slug:    in.Slug,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": post.ID}).Info("post created")
	return post, nil
}

// Update checks ownership, then applies the patch with a write scoped by id and owner.
func (s *postService) Update(ctx context.Context, userID, id uuid.UUID, patch model.PostPatch) (*model.Post, error) {
	if patch.Empty() {
		return nil, apperr.MissingUpdateFields()
	}

	existing, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperr.ErrForbidden
	}

	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		patch.Content = &content
	}
	post, err := s.posts.UpdateOwned(ctx, id, userID, patch)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": id}).Info("post updated")
	return post, nil
}

// Delete removes the post if the caller owns it. Absent or foreign posts are not an error.
func (s *postService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.posts.DeleteOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.WithFields(logrus.Fields{"user_id": userID, "post_id": id}).Info("post deleted")
	}
	return nil
}
