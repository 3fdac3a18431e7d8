package gate

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jobfinder/jobfinder/internal/auth"
)

// IdentityKey is the fiber.Ctx locals key the middleware stores the
// resolved identity under on allowed protected requests.
const IdentityKey = "identity"

// Middleware wires the gate into fiber: resolve the session cookie,
// decide, and either pass through, redirect to login, or answer 401.
func Middleware(g *Gate, resolver *auth.Resolver, cookies *auth.CookieManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		identity := resolver.Resolve(c)
		hadCookie := c.Cookies(resolver.CookieName()) != ""

		decision := g.Decide(path, identity, hadCookie)

		if decision.ClearCookie && cookies != nil {
			cookies.Clear(c)
		}

		switch decision.Action {
		case ActionRedirect:
			return c.Redirect(decision.RedirectTo, fiber.StatusFound)
		case ActionUnauthorized:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "Unauthorized",
			})
		}

		if identity != nil {
			c.Locals(IdentityKey, identity)
		}

		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by Middleware, or nil.
func IdentityFromCtx(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(IdentityKey).(*auth.Identity)
	return identity
}
