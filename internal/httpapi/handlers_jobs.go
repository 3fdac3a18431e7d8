package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/jobfinder/jobfinder/internal/board"
	"github.com/jobfinder/jobfinder/internal/gate"
)

// CreateJobPayload is the admin job creation body.
type CreateJobPayload struct {
	Title        string       `json:"title"`
	Company      string       `json:"company"`
	Location     string       `json:"location"`
	Type         string       `json:"type"`
	Category     string       `json:"category"`
	Salary       board.Salary `json:"salary"`
	Description  string       `json:"description"`
	Requirements []string     `json:"requirements"`
	Benefits     []string     `json:"benefits"`
	Featured     bool         `json:"featured"`
	Status       string       `json:"status"`
}

// Validate will validate the payload
func (r CreateJobPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Company, validation.Required, validation.Length(1, 200)),
	)
}

// UpdateJobPayload is the admin partial-update body. Nil fields are
// left untouched on the record.
type UpdateJobPayload struct {
	Title        *string       `json:"title"`
	Company      *string       `json:"company"`
	Location     *string       `json:"location"`
	Type         *string       `json:"type"`
	Category     *string       `json:"category"`
	Salary       *board.Salary `json:"salary"`
	Description  *string       `json:"description"`
	Requirements *[]string     `json:"requirements"`
	Benefits     *[]string     `json:"benefits"`
	Featured     *bool         `json:"featured"`
}

func (r UpdateJobPayload) apply(job *board.Job) {
	if r.Title != nil {
		job.Title = *r.Title
	}
	if r.Company != nil {
		job.Company = *r.Company
	}
	if r.Location != nil {
		job.Location = *r.Location
	}
	if r.Type != nil {
		job.Type = *r.Type
	}
	if r.Category != nil {
		job.Category = *r.Category
	}
	if r.Salary != nil {
		job.Salary = *r.Salary
	}
	if r.Description != nil {
		job.Description = *r.Description
	}
	if r.Requirements != nil {
		job.Requirements = *r.Requirements
	}
	if r.Benefits != nil {
		job.Benefits = *r.Benefits
	}
	if r.Featured != nil {
		job.Featured = *r.Featured
	}
}

// StatusPayload carries a requested status transition.
type StatusPayload struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Validate will validate the payload
func (r StatusPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required),
	)
}

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.Wrap(err, errors.CategoryBadInput, "Invalid id").
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}

func (s *Server) listPublicJobs(c *fiber.Ctx) error {
	filter := board.JobFilter{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Type:       c.Query("type"),
		Location:   c.Query("location"),
		ActiveOnly: true,
		Page:       c.QueryInt("page"),
		Limit:      c.QueryInt("limit"),
	}

	records, total, err := s.deps.Jobs.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": records,
		"total": total,
	})
}

func (s *Server) getPublicJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	record, err := s.deps.Jobs.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	// Read-path side effect. Failures only lose a count.
	if err := s.deps.Jobs.IncrementViews(c.Context(), id); err != nil {
		s.logger.Warn("view counter update failed: %v", err)
	}

	return c.JSON(record)
}

// ApplyPayload is the public application form body.
type ApplyPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	ResumeURL string `json:"resume_url"`
}

// Validate will validate the payload
func (r ApplyPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100)),
	)
}

func (s *Server) applyToJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	payload := ApplyPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Could not parse application payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "Application is missing required fields").
			WithCode(errors.CodeBadRequest)
	}

	// 404 on unknown job before accepting the application.
	if _, err := s.deps.Jobs.GetByID(c.Context(), id); err != nil {
		return err
	}

	record, err := s.deps.Applications.Create(c.Context(), &board.Application{
		JobID:     id,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		ResumeURL: payload.ResumeURL,
	})
	if err != nil {
		return err
	}

	if err := s.deps.Jobs.IncrementApplicants(c.Context(), id); err != nil {
		s.logger.Warn("applicant counter update failed: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (s *Server) adminListJobs(c *fiber.Ctx) error {
	filter := board.JobFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Page:     c.QueryInt("page"),
		Limit:    c.QueryInt("limit"),
	}

	if raw := c.Query("status"); raw != "" {
		status, ok := board.ParseJobStatus(raw)
		if !ok {
			return board.ErrInvalidStatus.WithMetadata(map[string]any{
				"entity": "job",
				"status": raw,
			})
		}
		filter.Status = status
	}

	records, total, err := s.deps.Jobs.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"items": records,
		"total": total,
	})
}

func (s *Server) adminCreateJob(c *fiber.Ctx) error {
	payload := CreateJobPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Could not parse job payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "Job is missing required fields").
			WithCode(errors.CodeBadRequest)
	}

	status := board.JobStatus(payload.Status)
	if payload.Status != "" && !status.IsValid() {
		return board.ErrInvalidStatus.WithMetadata(map[string]any{
			"entity": "job",
			"status": payload.Status,
		})
	}

	record, err := s.deps.Jobs.Create(c.Context(), &board.Job{
		Title:        payload.Title,
		Company:      payload.Company,
		Location:     payload.Location,
		Type:         payload.Type,
		Category:     payload.Category,
		Salary:       payload.Salary,
		Description:  payload.Description,
		Requirements: payload.Requirements,
		Benefits:     payload.Benefits,
		Featured:     payload.Featured,
		Status:       status,
	})
	if err != nil {
		return err
	}

	// Best effort; a failed dispatch never affects the response.
	if s.deps.Dispatcher != nil {
		s.deps.Dispatcher.JobCreated(record)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (s *Server) adminGetJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	record, err := s.deps.Jobs.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

func (s *Server) adminUpdateJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	payload := UpdateJobPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "Could not parse job payload").
			WithCode(errors.CodeBadRequest)
	}

	record, err := s.deps.Jobs.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	payload.apply(record)

	updated, err := s.deps.Jobs.Update(c.Context(), record)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (s *Server) adminUpdateJobStatus(c *fiber.Ctx) error {
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

	record, err := s.deps.Jobs.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	opts := []board.TransitionOption{}
	if payload.Reason != "" {
		opts = append(opts, board.WithTransitionReason(payload.Reason))
	}

	updated, err := s.deps.JobSM.Transition(c.Context(), s.actorRef(c), record, board.JobStatus(payload.Status), opts...)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func (s *Server) adminDeleteJob(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := s.deps.Jobs.Delete(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (s *Server) actorRef(c *fiber.Ctx) board.ActorRef {
	if identity := gate.IdentityFromCtx(c); identity != nil {
		return board.ActorRef{ID: identity.SubjectID, Type: identity.Role}
	}
	return board.ActorRef{Type: "system"}
}
