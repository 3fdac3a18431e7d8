package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r LoginPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (s *Server) login(c *fiber.Ctx) error {
	payload := LoginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Could not parse login payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "Email and password are required").
			WithCode(errors.CodeBadRequest)
	}

	token, err := s.deps.Verifier.Authenticate(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	s.deps.Cookies.Set(c, token)

	return c.JSON(fiber.Map{
		"success":    true,
		"redirectTo": "/admin",
	})
}

func (s *Server) logout(c *fiber.Ctx) error {
	s.deps.Cookies.Clear(c)
	return c.JSON(fiber.Map{
		"success": true,
	})
}

// authCheck reports session validity without ever failing the request.
// Front-ends poll it to decide client-side redirects.
func (s *Server) authCheck(c *fiber.Ctx) error {
	identity := s.deps.Resolver.Resolve(c)
	return c.JSON(fiber.Map{
		"authenticated": identity != nil && identity.IsAdmin(),
	})
}

// loginPage exists so the gate has a public UI endpoint to redirect to.
// Rendering is handled by the front-end bundle; the server only needs
// the route to resolve.
func (s *Server) loginPage(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!doctype html><title>Admin Login</title>`)
}
