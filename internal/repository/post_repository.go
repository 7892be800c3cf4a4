package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgiv/bloggy-server/internal/db"
	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Post, error)
	FindBySlug(ctx context.Context, userID uuid.UUID, slug string) (*model.Post, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch model.PostPatch) (*model.Post, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if db.IsDuplicateKey(err) {
		return apperr.ErrDuplicatePost
	}
	return err
}

// FindByID finds a post by ID regardless of owner.
func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// FindOwned finds a post by ID that belongs to userID.
func (r *postRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// FindBySlug finds the post of userID with the given slug.
func (r *postRepository) FindBySlug(ctx context.Context, userID uuid.UUID, slug string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("user_id = ? AND slug = ?", userID, slug).First(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// ListByUser lists the posts of userID, newest first.
func (r *postRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	posts := []model.Post{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateOwned applies patch to the post only if it still belongs to userID,
// then re-reads it under the same scope.
func (r *postRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, patch model.PostPatch) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(patch.Columns()).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&post).Error
	})
	if db.IsDuplicateKey(err) {
		return nil, apperr.ErrDuplicatePost
	}
	if err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// DeleteOwned deletes the post and its comments if it belongs to userID.
// It returns the number of posts removed.
func (r *postRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Post{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		if deleted == 0 {
			return nil
		}
		return tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error
	})
	return deleted, err
}
