package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/storyweave/backend/internal/router"
	"github.com/storyweave/backend/internal/seed"
	"github.com/storyweave/backend/internal/validators"
	"github.com/storyweave/backend/pkg/config"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	st, err := config.NewStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	log.Infof("Storage backend: %s", cfg.StorageBackend)

	if cfg.Env == "development" && cfg.StorageBackend == "memory" {
		if err := seed.Run(context.Background(), st); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		log.Info("Seed data loaded.")
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, st, cfg.JWTSecret, log)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
