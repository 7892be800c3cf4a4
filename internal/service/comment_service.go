package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/model"
	"github.com/forgiv/bloggy-server/internal/repository"
)

// CommentService manages comments.
type CommentService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Comment, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Comment, error)
	ListForPost(ctx context.Context, username, slug string) ([]model.Comment, error)
	Create(ctx context.Context, userID, postID uuid.UUID, content string) (*model.Comment, error)
	Update(ctx context.Context, userID, id uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type commentService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	log      logrus.FieldLogger
}

// NewCommentService creates a new comment service.
func NewCommentService(
	users repository.UserRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
	log logrus.FieldLogger,
) CommentService {
	return &commentService{users: users, posts: posts, comments: comments, log: log}
}

func (s *commentService) List(ctx context.Context, userID uuid.UUID) ([]model.Comment, error) {
	return s.comments.ListByUser(ctx, userID)
}

func (s *commentService) Get(ctx context.Context, userID, id uuid.UUID) (*model.Comment, error) {
	return s.comments.FindOwned(ctx, id, userID)
}

// ListForPost lists the comments of the post identified by its owner and slug.
func (s *commentService) ListForPost(ctx context.Context, username, slug string) ([]model.Comment, error) {
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindBySlug(ctx, owner.ID, slug)
	if err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, post.ID)
}

// Create adds a comment to an existing post.
func (s *commentService) Create(ctx context.Context, userID, postID uuid.UUID, content string) (*model.Comment, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{UserID: userID, PostID: postID, Content: content}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "comment_id": comment.ID, "post_id": postID}).Info("comment created")
	return comment, nil
}

// Update rewrites a comment owned by the caller.
func (s *commentService) Update(ctx context.Context, userID, id uuid.UUID, content string) (*model.Comment, error) {
	existing, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, apperr.ErrForbidden
	}

	comment, err := s.comments.UpdateOwned(ctx, id, userID, content)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": userID, "comment_id": id}).Info("comment updated")
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.comments.DeleteOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.WithFields(logrus.Fields{"user_id": userID, "comment_id": id}).Info("comment deleted")
	}
	return nil
}
