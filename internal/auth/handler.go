package auth

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/httperr"
	"github.com/cakeshop/cakeshop/internal/identity"
)

// Handler exposes the auth endpoints: register, login, me, logout.
type Handler struct {
	ids    *identity.Service
	tokens *TokenService
}

func NewHandler(ids *identity.Service, tokens *TokenService) *Handler {
	return &Handler{ids: ids, tokens: tokens}
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type userPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Register validates the payload, creates the account and responds with a token.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation("Please provide all required fields")
	}
	user, err := h.ids.Register(c.UserContext(), identity.Registration{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return h.respondWithToken(c, user, http.StatusCreated)
}

// Login authenticates by email and password and responds with a token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Validation("Please provide an email and password")
	}
	user, err := h.ids.Login(c.UserContext(), identity.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return h.respondWithToken(c, user, http.StatusOK)
}

// Me returns the stored record for the identity attached by the auth gate.
func (h *Handler) Me(c *fiber.Ctx) error {
	uid, _ := c.Locals(LocalsUserID).(string)
	if uid == "" {
		return httperr.NotAuthenticated("Not authorized to access this route")
	}
	user, err := h.ids.GetByID(c.UserContext(), uid)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": userPayload{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			CreatedAt:   user.CreatedAt,
		},
	})
}

// Logout cannot revoke an issued token; it only tells cookie-based clients to
// discard theirs by replacing it with one that expires almost immediately.
func (h *Handler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    "none",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{}})
}

// respondWithToken drops the password hash from the in-memory user before
// issuing the token, so it cannot reach the response by any retrieval path.
func (h *Handler) respondWithToken(c *fiber.Ctx, user identity.User, statusCode int) error {
	user.PasswordHash = nil
	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	return c.Status(statusCode).JSON(tokenResponse{Success: true, Token: token})
}
