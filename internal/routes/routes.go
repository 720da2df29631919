package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cakeshop/cakeshop/internal/auth"
	"github.com/cakeshop/cakeshop/internal/catalog"
	"github.com/cakeshop/cakeshop/internal/config"
	"github.com/cakeshop/cakeshop/internal/identity"
	"github.com/cakeshop/cakeshop/internal/middleware"
	"github.com/cakeshop/cakeshop/internal/uploads"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Images uploads.Store
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Without a database
// the repositories fall back to in-memory stores, which only development
// configurations allow.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cfg.FrontendURL != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     d.Cfg.FrontendURL,
			AllowCredentials: true,
		}))
	}

	RegisterHealthRoutes(app, d)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the Cake Shop API")
	})

	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}
	identitySvc := identity.NewService(userRepo)
	tokenSvc := auth.NewTokenService(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	authHandler := auth.NewHandler(identitySvc, tokenSvc)

	images := d.Images
	if images == nil {
		images = uploads.NewMemoryStore()
	}
	uploadHandler := uploads.NewHandler(images)

	var productRepo catalog.Repository
	if d.DB != nil {
		productRepo = catalog.NewPostgresRepository(d.DB)
	} else {
		productRepo = catalog.NewMemoryRepository()
	}
	listCache := catalog.NewListCache(d.Cache, d.Cfg.ProductCacheTTL, d.Logger)
	catalogSvc := catalog.NewService(productRepo, listCache)
	catalogHandler := catalog.NewHandler(catalogSvc, images)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	protect := middleware.Protect(tokenSvc)

	RegisterAuthRoutes(api, authHandler, protect)
	RegisterCatalogRoutes(api, catalogHandler, protect)
	RegisterUploadRoutes(api, uploadHandler, protect)

	return nil
}
