package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgiv/bloggy-server/internal/service"
	"github.com/forgiv/bloggy-server/internal/validate"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest documents the comment body. PostID is ignored on update.
type CommentRequest struct {
	PostID  string `json:"postId" example:"3f1c2b9e-6f0a-4c55-9a0e-2d7c8f1b4a10"`
	Content string `json:"content" example:"Nice post!"`
}

// List godoc
// @Summary List my comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Comment
// @Failure 401 {object} errors.ErrorResponse
// @Router /comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	comments, err := h.commentService.List(c.Request().Context(), id.UserID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Get godoc
// @Summary Get one of my comments
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	comment, err := h.commentService.Get(c.Request().Context(), id.UserID, commentID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// ListForPost godoc
// @Summary List the comments of a post
// @Tags comments
// @Produce json
// @Param username path string true "Post owner"
// @Param slug path string true "Post slug"
// @Success 200 {array} model.Comment
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{username}/{slug} [get]
func (h *CommentHandler) ListForPost(c echo.Context) error {
	comments, err := h.commentService.ListForPost(c.Request().Context(), c.Param("username"), c.Param("slug"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// Create godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param comment body CommentRequest true "Comment"
// @Success 201 {object} model.Comment
// @Header 201 {string} Location "/api/comments/{id}"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	if err := validate.CommentCreate.Check(body); err != nil {
		return respondError(err)
	}

	rawPostID, _ := body.String("postId")
	postID, err := parseID(rawPostID)
	if err != nil {
		return err
	}
	content, _ := body.String("content")
	comment, err := h.commentService.Create(c.Request().Context(), id.UserID, postID, content)
	if err != nil {
		return respondError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/comments/"+comment.ID.String())
	return c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary Edit one of my comments
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Param comment body CommentRequest true "New content"
// @Success 200 {object} model.Comment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /comments/{id} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	if err := validate.CommentUpdate.Check(body); err != nil {
		return respondError(err)
	}

	content, _ := body.String("content")
	comment, err := h.commentService.Update(c.Request().Context(), id.UserID, commentID, content)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary Delete one of my comments
// @Description Always succeeds; absent, foreign or malformed ids are ignored.
// @Tags comments
// @Security BearerAuth
// @Param id path string true "Comment ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	commentID, err := parseID(c.Param("id"))
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	if err := h.commentService.Delete(c.Request().Context(), id.UserID, commentID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
