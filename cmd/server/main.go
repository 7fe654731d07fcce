package main

import (
	"log"

	"github.com/jmalone/microblog/backend/internal/httperr"
	"github.com/jmalone/microblog/backend/internal/router"
	"github.com/jmalone/microblog/backend/pkg/config"
	"github.com/jmalone/microblog/backend/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = httperr.Handler
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	mailer := config.NewMailer(cfg)
	router.SetupRoutes(e, db, cfg, mailer)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
