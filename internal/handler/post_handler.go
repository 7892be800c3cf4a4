package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forgiv/bloggy-server/internal/model"
	"github.com/forgiv/bloggy-server/internal/service"
	"github.com/forgiv/bloggy-server/internal/validate"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest documents the post body. All fields are optional on update.
type PostRequest struct {
	Title   string `json:"title" example:"Hello World"`
	Content string `json:"content" example:"0123456789012345"`
	Slug    string `json:"slug" example:"hello-world"`
}

// List godoc
// @Summary List my posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Post
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	posts, err := h.postService.List(c.Request().Context(), id.UserID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get one of my posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	post, err := h.postService.Get(c.Request().Context(), id.UserID, postID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body PostRequest true "Post"
// @Success 201 {object} model.Post
// @Header 201 {string} Location "/api/posts/{id}"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	if err := validate.PostCreate.Check(body); err != nil {
		return respondError(err)
	}

	title, _ := body.String("title")
	content, _ := body.String("content")
	slug, _ := body.String("slug")
	post, err := h.postService.Create(c.Request().Context(), id.UserID, service.PostInput{
		Title:   title,
		Content: content,
		Slug:    slug,
	})
	if err != nil {
		return respondError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/posts/"+post.ID.String())
	return c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary Update one of my posts
// @Description Partial update; at least one of title, content or slug is required.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param post body PostRequest true "Fields to change"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return err
	}
	body, err := bindBody(c)
	if err != nil {
		return err
	}
	if err := validate.PostUpdate.CheckPresent(body); err != nil {
		return respondError(err)
	}

	patch := model.PostPatch{
		Title:   optionalString(body, "title"),
		Content: optionalString(body, "content"),
		Slug:    optionalString(body, "slug"),
	}
	post, err := h.postService.Update(c.Request().Context(), id.UserID, postID, patch)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete one of my posts
// @Description Always succeeds; absent, foreign or malformed ids are ignored.
// @Tags posts
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	if err := h.postService.Delete(c.Request().Context(), id.UserID, postID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
