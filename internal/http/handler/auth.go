package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"recipehub/internal/auth"
	"recipehub/internal/model"
	"recipehub/internal/repository"
)

// stateCookie binds the OAuth state parameter to the browser that started
// the handshake.
const stateCookie = "recipehub_oauth_state"

// StartOAuth redirects the client to the provider's consent page.
func StartOAuth(provider *auth.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     stateCookie,
			Value:    state,
			Expires:  time.Now().Add(10 * time.Minute),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect(provider.AuthCodeURL(state), fiber.StatusFound)
	}
}

// OAuthCallback completes the handshake: it verifies state, exchanges the
// code, fetches the provider profile, upserts the user and issues a session
// cookie. Provider-side failures surface as auth errors (401).
func OAuthCallback(provider *auth.Provider, users repository.UserRepository, sessions *auth.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errParam := c.Query("error"); errParam != "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "provider denied authorization")
		}

		code := c.Query("code")
		state := c.Query("state")
		if code == "" || state == "" || state != c.Cookies(stateCookie) {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid oauth state")
		}
		c.ClearCookie(stateCookie)

		token, err := provider.Exchange(c.UserContext(), code)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "code exchange failed")
		}

		profile, err := provider.FetchProfile(c.UserContext(), token)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "profile fetch failed")
		}

		u, err := users.Upsert(c.UserContext(), &model.User{
			Provider: provider.Name(),
			Subject:  profile.Subject,
			Email:    profile.Email,
			Name:     profile.Name,
			Picture:  profile.Picture,
		})
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		sessionToken, expires, err := sessions.Issue(u)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Cookie(&fiber.Cookie{
			Name:     sessions.CookieName(),
			Value:    sessionToken,
			Expires:  expires,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect("/", fiber.StatusFound)
	}
}

// GetSession returns the caller's session object; the user id field is copied
// from the session token's subject claim.
func GetSession(sessions *auth.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(sessions.CookieName())
		if token == "" {
			token = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if token == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		}

		sess, err := sessions.Session(token)
		if err != nil {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid session")
		}
		return c.JSON(sess)
	}
}

// SignOut clears the session cookie.
func SignOut(sessions *auth.SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     sessions.CookieName(),
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
