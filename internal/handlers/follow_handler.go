package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/middleware"
	"github.com/storyweave/backend/internal/social"
)

// FollowHandler handles follow/unfollow HTTP requests.
type FollowHandler struct {
	service *social.Service
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(service *social.Service) *FollowHandler {
	return &FollowHandler{service: service}
}

// RegisterFollowRoutes registers follow-related routes.
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user. Self-follow and duplicates are rejected.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	follow, err := h.service.FollowUser(c.Request().Context(), middleware.ViewerID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, follow)
}

// UnfollowUser removes a follow relationship.
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	if err := h.service.UnfollowUser(c.Request().Context(), middleware.ViewerID(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
