package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/middleware"
	"github.com/storyweave/backend/internal/social"
)

// LikeHandler handles like/unlike HTTP requests.
type LikeHandler struct {
	service *social.Service
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(service *social.Service) *LikeHandler {
	return &LikeHandler{service: service}
}

// RegisterLikeRoutes registers like-related routes.
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/stories/:id/like", h.LikeStory)
	g.DELETE("/stories/:id/like", h.UnlikeStory)
}

// LikeStory likes a story. A duplicate like is rejected with 409.
func (h *LikeHandler) LikeStory(c echo.Context) error {
	like, err := h.service.LikeStory(c.Request().Context(), c.Param("id"), middleware.ViewerID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, like)
}

// UnlikeStory removes the caller's like.
func (h *LikeHandler) UnlikeStory(c echo.Context) error {
	if err := h.service.UnlikeStory(c.Request().Context(), c.Param("id"), middleware.ViewerID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
