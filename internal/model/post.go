package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post represents a blog post. Title and slug are unique per owner.
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index;uniqueIndex:idx_posts_user_title;uniqueIndex:idx_posts_user_slug"`
	Title     string    `json:"title" gorm:"size:64;not null;uniqueIndex:idx_posts_user_title"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Slug      string    `json:"slug" gorm:"size:64;not null;uniqueIndex:idx_posts_user_slug"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostPatch holds the fields of a partial post update; nil fields are left untouched.
type PostPatch struct {
	Title   *string
	Content *string
	Slug    *string
}

// Empty reports whether the patch changes nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Slug == nil
}

// Columns returns the column assignments for the patch.
func (p PostPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.Slug != nil {
		cols["slug"] = *p.Slug
	}
	return cols
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
