package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forgiv/bloggy-server/internal/model"
)

// CommentRepository defines comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Comment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, content string) (*model.Comment, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit("Author").Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

func (r *commentRepository) FindOwned(ctx context.Context, id, userID uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&comment).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Comment, error) {
	comments := []model.Comment{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at desc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByPost lists the comments of a post, newest first, with their authors loaded.
func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	comments := []model.Comment{}
	if err := r.db.WithContext(ctx).Preload("Author").Where("post_id = ?", postID).
		Order("created_at desc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateOwned rewrites the content only while the comment still belongs to userID.
func (r *commentRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, content string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Comment{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("content", content).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&comment).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}
