package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/catalog"
)

// RegisterCatalogRoutes wires product endpoints. Reads are public; mutations
// require an authenticated identity.
func RegisterCatalogRoutes(r fiber.Router, h *catalog.Handler, protect fiber.Handler) {
	group := r.Group("/products")
	group.Get("/", h.List)
	group.Post("/", protect, h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", protect, h.Update)
	group.Delete("/:id", protect, h.Delete)
}
