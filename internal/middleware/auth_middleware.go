// Package middleware holds the per-request authentication pipeline.
//
// The pipeline is deliberately fail-open: it never rejects a request, it only
// attaches a principal when the whole chain (bearer header, token validation,
// fresh subject lookup) succeeds. Rejection happens downstream, inside the
// use cases that require a principal. Public endpoints therefore work without
// a token and protected ones fail closed at the point of use.
package middleware

import (
	"strings"

	"blogapi/internal/models"
	"blogapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// Authenticate returns the context-attaching authentication handler.
//
// Per request: no Authorization header, a non-Bearer scheme, an invalid or
// expired token, or an unknown subject all leave the request unauthenticated
// and forward it unchanged. A valid token has its subject re-resolved against
// storage so the principal always carries the user's current role.
func Authenticate(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return c.Next()
		}

		principal, err := authService.ResolveSubject(claims.Subject)
		if err != nil {
			return c.Next()
		}

		// Locals is scoped to this request only; the principal cannot leak
		// across concurrent requests.
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom returns the request's principal, or nil when the request is
// unauthenticated.
func PrincipalFrom(c *fiber.Ctx) *models.Principal {
	principal, _ := c.Locals(principalKey).(*models.Principal)
	return principal
}
