package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/auth"
)

// RegisterAuthRoutes wires authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, protect fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Get("/me", protect, h.Me)
	group.Get("/logout", protect, h.Logout)
}
