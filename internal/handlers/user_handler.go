package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/social"
)

// UserHandler handles public user profile requests.
type UserHandler struct {
	service *social.Service
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *social.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterUserRoutes registers user profile routes.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetProfile)
}

// GetProfile returns a user's public profile with follower counts.
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.service.Profile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}
