// Package repository holds the GORM-backed stores for users, posts and comments.
//
// Stores return apperr.ErrNotFound instead of gorm.ErrRecordNotFound and translate
// unique-index violations into the matching duplicate error, so services never
// need to import gorm.
package repository

import (
	"errors"

	"gorm.io/gorm"

	apperr "github.com/forgiv/bloggy-server/internal/errors"
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}
	return err
}
