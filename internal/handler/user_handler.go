package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgiv/bloggy-server/internal/service"
	"github.com/forgiv/bloggy-server/internal/validate"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRequest documents the registration body.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret1"`
	Blog     string `json:"blog" example:"A blog"`
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Header 201 {string} Location "/api/users/{username}"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	if err := validate.UserCreate.Check(body); err != nil {
		return respondError(err)
	}

	username, _ := body.String("username")
	password, _ := body.String("password")
	blog, _ := body.String("blog")
	user, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Username: username,
		Password: password,
		Blog:     blog,
	})
	if err != nil {
		return respondError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/users/"+user.Username)
	return c.JSON(http.StatusCreated, user)
}

// Me godoc
// @Summary Get the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) Me(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	user, err := h.svc.Me(c.Request().Context(), id.UserID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Profile godoc
// @Summary Get a user's public profile
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.Profile
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	profile, err := h.svc.Profile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Posts godoc
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/posts [get]
func (h *UserHandler) Posts(c echo.Context) error {
	posts, err := h.svc.PostsByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, posts)
}
