package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cakeshop/cakeshop/internal/auth"
	"github.com/cakeshop/cakeshop/internal/httperr"
)

// Protect gates access to routes that require an authenticated identity. The
// bearer token comes from the Authorization header, falling back to the token
// cookie. On success the decoded identity is attached to the request locals;
// handlers that need fresh data re-fetch the user themselves. Failure output
// never includes the secret or the presented token.
func Protect(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return httperr.NotAuthenticated("Not authorized to access this route")
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return httperr.NotAuthenticated("Session expired, please log in again")
			}
			return httperr.NotAuthenticated("Not authorized to access this route")
		}

		c.Locals(auth.LocalsUserID, claims.ID)
		c.Locals(auth.LocalsClaims, claims)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[len("Bearer "):])
	}
	return c.Cookies(auth.TokenCookie)
}
