package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// SubscribePayload is the public subscription body.
type SubscribePayload struct {
	Email string `form:"email" json:"email"`
	Phone string `form:"phone" json:"phone"`
}

// Validate will validate the payload
func (r SubscribePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

func (s *Server) subscribe(c *fiber.Ctx) error {
	payload := SubscribePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Could not parse subscription payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "A valid email is required").
			WithCode(errors.CodeBadRequest)
	}

	record, err := s.deps.Subscribers.Subscribe(c.Context(), payload.Email, payload.Phone)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (s *Server) unsubscribe(c *fiber.Ctx) error {
	payload := SubscribePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Could not parse subscription payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "A valid email is required").
			WithCode(errors.CodeBadRequest)
	}

	if err := s.deps.Subscribers.Unsubscribe(c.Context(), payload.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (s *Server) adminListSubscribers(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active")

	records, total, err := s.deps.Subscribers.List(c.Context(), activeOnly, c.QueryInt("page"), c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": records,
		"total": total,
	})
}

func (s *Server) adminStats(c *fiber.Ctx) error {
	jobCounts, err := s.deps.Jobs.CountByStatus(c.Context())
	if err != nil {
		return err
	}

	totalApplications, err := s.deps.Applications.Count(c.Context())
	if err != nil {
		return err
	}

	activeSubscribers, err := s.deps.Subscribers.CountActive(c.Context())
	if err != nil {
		return err
	}

	totalJobs := 0
	for _, n := range jobCounts {
		totalJobs += n
	}

	return c.JSON(fiber.Map{
		"jobs": fiber.Map{
			"total":    totalJobs,
			"byStatus": jobCounts,
		},
		"applications": fiber.Map{
			"total": totalApplications,
		},
		"subscribers": fiber.Map{
			"active": activeSubscribers,
		},
	})
}
