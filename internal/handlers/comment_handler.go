package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/apperrors"
	"github.com/storyweave/backend/internal/feed"
	"github.com/storyweave/backend/internal/middleware"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/social"
	"github.com/storyweave/backend/internal/store"
)

// CommentHandler handles HTTP requests related to comments.
type CommentHandler struct {
	store    store.Store
	composer *feed.Composer
	service  *social.Service
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(st store.Store, composer *feed.Composer, service *social.Service) *CommentHandler {
	return &CommentHandler{store: st, composer: composer, service: service}
}

// RegisterPublicRoutes registers the comment read routes.
func (h *CommentHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/stories/:id/comments", h.GetCommentsByStory)
}

// RegisterProtectedRoutes registers the authenticated comment routes.
func (h *CommentHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("/stories/:id/comments", h.CreateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// GetCommentsByStory returns a story's comments, newest first.
func (h *CommentHandler) GetCommentsByStory(c echo.Context) error {
	storyID := c.Param("id")

	story, err := h.store.StoryByID(c.Request().Context(), storyID)
	if err != nil {
		return httpError(err)
	}
	if story == nil {
		return httpError(apperrors.NotFound("story not found"))
	}

	comments, err := h.composer.CommentsForStory(c.Request().Context(), storyID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateComment adds a comment to a story and notifies its author.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	comment, err := h.service.AddComment(c.Request().Context(), c.Param("id"), middleware.ViewerID(c), req.Content)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment, author-only.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	if err := h.service.DeleteComment(c.Request().Context(), c.Param("id"), middleware.ViewerID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
