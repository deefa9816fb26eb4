package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storyweave/backend/internal/feed"
	"github.com/storyweave/backend/internal/middleware"
	"github.com/storyweave/backend/internal/models"
	"github.com/storyweave/backend/internal/social"
)

// StoryHandler handles story listing, reading and author mutations.
type StoryHandler struct {
	composer *feed.Composer
	service  *social.Service
}

// NewStoryHandler creates a new StoryHandler.
func NewStoryHandler(composer *feed.Composer, service *social.Service) *StoryHandler {
	return &StoryHandler{composer: composer, service: service}
}

// RegisterPublicRoutes registers the read routes. The viewer identity is
// optional here; when present it populates the isLiked overlay.
func (h *StoryHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/stories", h.ListStories)
	g.GET("/stories/:id", h.GetStory)
	g.GET("/users/:id/stories", h.StoriesByAuthor)
}

// RegisterProtectedRoutes registers the authenticated routes.
func (h *StoryHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/stories/feed", h.GetFeed)
	g.POST("/stories", h.CreateStory)
	g.PUT("/stories/:id", h.UpdateStory)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// ListStories returns published stories. Query parameters select the
// mode: search wins over genre, genre over plain listing.
func (h *StoryHandler) ListStories(c echo.Context) error {
	limit, offset := pagination(c)
	stories, err := h.composer.ListStories(c.Request().Context(), feed.ListOptions{
		Genre:    c.QueryParam("genre"),
		Search:   c.QueryParam("search"),
		Limit:    limit,
		Offset:   offset,
		ViewerID: middleware.ViewerID(c),
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stories)
}

// GetFeed returns the follow-graph feed for the authenticated viewer.
func (h *StoryHandler) GetFeed(c echo.Context) error {
	limit, offset := pagination(c)
	stories, err := h.composer.FeedFor(c.Request().Context(), middleware.ViewerID(c), limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stories)
}

// GetStory returns a single story with author and counts.
func (h *StoryHandler) GetStory(c echo.Context) error {
	story, err := h.composer.StoryByID(c.Request().Context(), c.Param("id"), middleware.ViewerID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, story)
}

// StoriesByAuthor returns an author's published stories.
func (h *StoryHandler) StoriesByAuthor(c echo.Context) error {
	limit, offset := pagination(c)
	stories, err := h.composer.StoriesByAuthor(c.Request().Context(), c.Param("id"), middleware.ViewerID(c), limit, offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stories)
}

// CreateStory publishes a story owned by the caller.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	story, err := h.service.CreateStory(c.Request().Context(), middleware.ViewerID(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, story)
}

// UpdateStory applies a partial edit, owner-only.
func (h *StoryHandler) UpdateStory(c echo.Context) error {
	var req models.UpdateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	story, err := h.service.UpdateStory(c.Request().Context(), c.Param("id"), middleware.ViewerID(c), &req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, story)
}

// DeleteStory removes a story, owner-only.
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	if err := h.service.DeleteStory(c.Request().Context(), c.Param("id"), middleware.ViewerID(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
