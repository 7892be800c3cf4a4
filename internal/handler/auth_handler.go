package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgiv/bloggy-server/internal/auth"
	apperr "github.com/forgiv/bloggy-server/internal/errors"
	"github.com/forgiv/bloggy-server/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	AuthToken string `json:"authToken"`
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest()
	}
	if err := c.Validate(&req); err != nil {
		return apperr.BadRequest()
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, TokenResponse{AuthToken: token})
}

// Refresh godoc
// @Summary Refresh bearer token
// @Description Issues a new token for the same user with a later expiry.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TokenResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return apperr.Unauthenticated(errors.New("no token claims on request"))
	}

	token, err := h.authService.Refresh(c.Request().Context(), claims)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, TokenResponse{AuthToken: token})
}

// Identify resolves the verified token into the caller's identity. It must
// run after the bearer guard.
func (h *AuthHandler) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := auth.ClaimsFrom(c)
		if !ok {
			return apperr.Unauthenticated(errors.New("no token claims on request"))
		}
		id, err := h.authService.Identify(c.Request().Context(), claims)
		if err != nil {
			return respondError(err)
		}
		auth.SetIdentity(c, id)
		return next(c)
	}
}
