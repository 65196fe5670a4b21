package server

import (
	"errors"

	"notekeep/internal/auth"
	"notekeep/internal/config"
	"notekeep/internal/database"
	"notekeep/internal/database/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/rs/zerolog/log"
)

type FiberServer struct {
	*fiber.App

	db     database.Service
	cfg    *config.Config
	tokens *auth.TokenIssuer
	users  repositories.UserRepository
	notes  repositories.NoteRepository
}

func New(cfg *config.Config, db database.Service) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader: "notekeep",
			AppName:      "notekeep",
			ErrorHandler: errorHandler,
		}),
		db:     db,
		cfg:    cfg,
		tokens: auth.NewTokenIssuer([]byte(cfg.TokenSecret), cfg.TokenTTL),
		users:  repositories.NewUserRepository(db.DB()),
		notes:  repositories.NewNoteRepository(db.DB()),
	}
	server.App.Use(favicon.New())
	server.App.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		MaxAge:       3600,
	}))
	server.App.Use(logger.New())
	server.App.Use(pprof.New())
	return server
}

// errorHandler is the backstop for errors handlers did not map themselves.
// Anything that is not an explicit fiber error surfaces as a generic 500 so
// persistence and hashing internals never leak to clients.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": true, "message": fiberErr.Message})
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   true,
		"message": "Internal Server Error",
	})
}
