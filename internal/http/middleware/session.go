package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"recipehub/internal/auth"
)

// UserIDLocalKey is the key used to store the authenticated user id in
// Fiber's context locals.
const UserIDLocalKey = "user_id"

// Session guards API routes: requests without a valid session token are
// rejected with 401. The token is read from the session cookie or an
// Authorization bearer header. On success the token's subject (the user id)
// is stored in context locals.
func Session(mgr *auth.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(mgr.CookieName())
		if token == "" {
			token = extractBearer(c.Get(fiber.HeaderAuthorization))
		}
		if token == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := mgr.Parse(token)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(UserIDLocalKey, claims.Subject)
		return c.Next()
	}
}

// AllowMethods enforces a per-route HTTP method allow-list; any other method
// is rejected with 405.
func AllowMethods(methods ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[strings.ToUpper(m)] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := allowed[c.Method()]; !ok {
			return fiber.ErrMethodNotAllowed
		}
		return c.Next()
	}
}

func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
