package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/storyweave/backend/internal/feed"
	"github.com/storyweave/backend/internal/handlers"
	"github.com/storyweave/backend/internal/middleware"
	"github.com/storyweave/backend/internal/notify"
	"github.com/storyweave/backend/internal/social"
	"github.com/storyweave/backend/internal/store"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes wires the store into the core layers and registers all
// application routes. The store is passed in explicitly; there is no
// package-level instance.
func SetupRoutes(e *echo.Echo, st store.Store, jwtSecret string, log *logrus.Logger) {
	composer := feed.NewComposer(st, log)
	fanout := notify.NewFanout(st, log)
	service := social.NewService(st, fanout)

	e.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(st, service, jwtSecret)
	storyHandler := handlers.NewStoryHandler(composer, service)
	commentHandler := handlers.NewCommentHandler(st, composer, service)
	likeHandler := handlers.NewLikeHandler(service)
	followHandler := handlers.NewFollowHandler(service)
	notificationHandler := handlers.NewNotificationHandler(fanout)
	userHandler := handlers.NewUserHandler(service)

	// Unprotected auth routes
	authGroup := e.Group("/api/auth")
	authHandler.RegisterAuthRoutes(authGroup)

	// Public reads; a valid token, when present, supplies the viewer
	// identity for the isLiked overlay.
	public := e.Group("/api")
	public.Use(middleware.OptionalJWTAuth(jwtSecret))
	storyHandler.RegisterPublicRoutes(public)
	commentHandler.RegisterPublicRoutes(public)
	userHandler.RegisterUserRoutes(public)

	// Protected routes
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtSecret))
	authHandler.RegisterUserRoutes(api)
	storyHandler.RegisterProtectedRoutes(api)
	commentHandler.RegisterProtectedRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Info("All routes configured.")
}
