// Package handler holds the echo handlers for users, auth, posts and comments.
package handler

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/forgiv/bloggy-server/internal/auth"
	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/validate"
)

var bodyBinder = &echo.DefaultBinder{}

// bindBody decodes the JSON request body into a field map without merging
// in path parameters.
func bindBody(c echo.Context) (validate.Body, error) {
	body := validate.Body{}
	if err := bodyBinder.BindBody(c, &body); err != nil {
		return nil, apperr.BadRequest()
	}
	if body == nil {
		body = validate.Body{}
	}
	return body, nil
}

// parseID validates a resource id taken from the path or body.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.MalformedID()
	}
	return id, nil
}

// caller returns the identity resolved by the identity middleware.
func caller(c echo.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		return auth.Identity{}, apperr.Unauthenticated(errors.New("no identity on request"))
	}
	return id, nil
}

// respondError maps a domain error to its HTTP rendering.
func respondError(err error) error {
	return apperr.MapErrorToHTTP(err)
}

func optionalString(body validate.Body, field string) *string {
	s, ok := body.String(field)
	if !ok {
		return nil
	}
	return &s
}
