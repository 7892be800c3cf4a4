package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TokenContextKey is where the bearer guard stores the parsed *jwt.Token.
	TokenContextKey    = "user"
	identityContextKey = "identity"
)

// Identity is the authenticated caller resolved from a verified token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// ClaimsFrom returns the verified claims placed on c by the bearer guard.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	token, ok := c.Get(TokenContextKey).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}

// SetIdentity stores the resolved caller on c.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityContextKey, id)
}

// IdentityFrom returns the caller stored by SetIdentity.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityContextKey).(Identity)
	return id, ok
}
