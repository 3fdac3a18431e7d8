package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultCookieName is the single session cookie the product uses.
const DefaultCookieName = "jobfinder_session"

// CookieManager writes and clears the session cookie with the fixed
// contract: http-only, SameSite=Lax, path /, 7-day max age, Secure in
// production.
type CookieManager struct {
	name     string
	duration time.Duration
	secure   bool
}

// NewCookieManager builds a CookieManager. A zero duration falls back to the
// token lifetime (7 days).
func NewCookieManager(name string, duration time.Duration, secure bool) *CookieManager {
	if name == "" {
		name = DefaultCookieName
	}
	if duration <= 0 {
		duration = time.Duration(DefaultTokenExpiration) * time.Hour
	}
	return &CookieManager{
		name:     name,
		duration: duration,
		secure:   secure,
	}
}

// Name returns the session cookie name.
func (m *CookieManager) Name() string {
	return m.name
}

// Set writes the session cookie carrying the given token.
func (m *CookieManager) Set(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     m.name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.duration),
		MaxAge:   int(m.duration / time.Second),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Clear expires the session cookie.
func (m *CookieManager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
