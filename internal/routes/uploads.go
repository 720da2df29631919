package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/uploads"
)

// RegisterUploadRoutes wires the image store endpoints. Object keys contain
// slashes, hence the wildcard segments.
func RegisterUploadRoutes(r fiber.Router, h *uploads.Handler, protect fiber.Handler) {
	group := r.Group("/uploads", protect)
	group.Post("/image", h.UploadImage)
	group.Delete("/image/*", h.DeleteImage)
	group.Get("/image/*", h.GetImage)
}
