package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/jobfinder/jobfinder/internal/board"
)

func (s *Server) adminListApplications(c *fiber.Ctx) error {
	filter := board.ApplicationFilter{
		Page:  c.QueryInt("page"),
		Limit: c.QueryInt("limit"),
	}

	if raw := c.Query("jobId"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return errors.Wrap(err, errors.CategoryBadInput, "Invalid jobId").
				WithCode(errors.CodeBadRequest)
		}
		filter.JobID = &jobID
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := board.ParseApplicationStatus(raw)
		if !ok {
			return board.ErrInvalidStatus.WithMetadata(map[string]any{
				"entity": "application",
				"status": raw,
			})
		}
		filter.Status = status
	}

	records, total, err := s.deps.Applications.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": records,
		"total": total,
	})
}

func (s *Server) adminUpdateApplicationStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	payload := StatusPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Could not parse status payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "Status is required").
			WithCode(errors.CodeBadRequest)
	}

	record, err := s.deps.Applications.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	opts := []board.TransitionOption{}
	if payload.Reason != "" {
		opts = append(opts, board.WithTransitionReason(payload.Reason))
	}

	updated, err := s.deps.AppSM.Transition(c.Context(), s.actorRef(c), record, board.ApplicationStatus(payload.Status), opts...)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (s *Server) adminDeleteApplication(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := s.deps.Applications.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
