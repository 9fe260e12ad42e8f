package main

import (
	"time"

	"shopcart/internal/config"
	"shopcart/internal/handlers"
	"shopcart/internal/middleware"
	"shopcart/internal/repositories"
	"shopcart/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// appDeps are the externally constructed collaborators of the HTTP app.
// Publisher and Uploader are nil when their backend is disabled.
type appDeps struct {
	Config    config.Config
	DB        *gorm.DB
	Publisher services.EventPublisher
	Uploader  services.ImageUploader
	Log       *zap.Logger
}

// newApp wires repositories, services and handlers onto a new Fiber app.
func newApp(deps appDeps) (*fiber.App, error) {
	cfg := deps.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	productRepo := repositories.NewGORMProductRepository(deps.DB)
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, deps.Log)
	productService := services.NewProductService(productRepo, deps.Publisher, deps.Log)
	cartService := services.NewCartService(cartRepo, productRepo, deps.Publisher, deps.Log)
	imageService := services.NewImageService(deps.Uploader, deps.Log)

	authHandler := handlers.NewAuthHandler(authService, cfg.CookieSecure, cfg.JWTTTL, deps.Log)
	productHandler := handlers.NewProductHandler(productService, imageService, deps.Log)
	cartHandler := handlers.NewCartHandler(cartService, deps.Log)

	app := fiber.New(fiber.Config{
		AppName:      "shopcart",
		ErrorHandler: handlers.ErrorHandler(deps.Log),
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization,Cache-Control,Expires,Pragma",
		AllowCredentials: true,
	}))

	api := app.Group("/api")
	authHandler.RegisterRoutes(api)

	var adminGuards []fiber.Handler
	if cfg.AuthEnforceAdminRole {
		adminGuards = append(adminGuards, middleware.AuthRequired(authService), middleware.RequireRole("admin"))
	}
	productHandler.RegisterAdminRoutes(api, adminGuards...)
	productHandler.RegisterShopRoutes(api)

	var cartGuards []fiber.Handler
	if cfg.AuthProtectCart {
		cartGuards = append(cartGuards, middleware.AuthRequired(authService))
	}
	cartHandler.RegisterRoutes(api, cartGuards...)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"rabbitMQ": deps.Publisher != nil,
			"images":   deps.Uploader != nil,
		})
	})

	return app, nil
}
