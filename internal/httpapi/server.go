package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/jobfinder/jobfinder/internal/auth"
	"github.com/jobfinder/jobfinder/internal/board"
	"github.com/jobfinder/jobfinder/internal/gate"
	"github.com/jobfinder/jobfinder/internal/notify"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] HTTP "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] HTTP "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] HTTP "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] HTTP "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Verifier     *auth.Verifier
	Resolver     *auth.Resolver
	Cookies      *auth.CookieManager
	Gate         *gate.Gate
	Jobs         board.Jobs
	Applications board.Applications
	Subscribers  board.Subscribers
	JobSM        board.JobStateMachine
	AppSM        board.ApplicationStateMachine
	Dispatcher   *notify.Dispatcher
	Logger       Logger
}

// Server owns the fiber app and its handlers.
type Server struct {
	app    *fiber.App
	deps   Deps
	logger Logger
}

// New builds the fiber app, wires the gate middleware, and registers
// every route.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = defLogger{}
	}
	if deps.Gate == nil {
		deps.Gate = gate.New()
	}

	s := &Server{
		deps:   deps,
		logger: deps.Logger,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "jobfinder",
		ErrorHandler: s.errorHandler,
	})

	s.app.Use(gate.Middleware(deps.Gate, deps.Resolver, deps.Cookies))

	s.registerRoutes()

	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) registerRoutes() {
	app := s.app

	// public surface
	app.Get("/api/jobs", s.listPublicJobs)
	app.Get("/api/jobs/:id", s.getPublicJob)
	app.Post("/api/jobs/:id/apply", s.applyToJob)
	app.Post("/api/subscribe", s.subscribe)
	app.Post("/api/unsubscribe", s.unsubscribe)

	// session surface, reachable without a session
	app.Post("/api/admin/login", s.login)
	app.Post("/api/admin/logout", s.logout)
	app.Get("/api/admin/auth-check", s.authCheck)
	app.Get("/admin/login", s.loginPage)

	// admin surface, behind the gate
	app.Get("/api/admin/jobs", s.adminListJobs)
	app.Post("/api/admin/jobs", s.adminCreateJob)
	app.Get("/api/admin/jobs/:id", s.adminGetJob)
	app.Patch("/api/admin/jobs/:id", s.adminUpdateJob)
	app.Patch("/api/admin/jobs/:id/status", s.adminUpdateJobStatus)
	app.Delete("/api/admin/jobs/:id", s.adminDeleteJob)

	app.Get("/api/admin/applications", s.adminListApplications)
	app.Patch("/api/admin/applications/:id/status", s.adminUpdateApplicationStatus)
	app.Delete("/api/admin/applications/:id", s.adminDeleteApplication)

	app.Get("/api/admin/subscribers", s.adminListSubscribers)
	app.Get("/api/admin/stats", s.adminStats)
}

// errorHandler converts structured errors into the boundary contract:
// 401/404/400/409 with {success,error}, everything else a 500 with a
// generic message.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"error":   fiberErr.Message,
			})
		}
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := statusForError(richErr)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed: %s (category=%s)", richErr.Message, richErr.Category)
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   "An unexpected server error occurred",
		})
	}

	s.logger.Debug("request rejected: %s (category=%s code=%d)", richErr.Message, richErr.Category, status)

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   richErr.Message,
	})
}

func statusForError(err *errors.Error) int {
	switch err.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return http.StatusUnauthorized
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryConflict:
		return http.StatusConflict
	}

	if err.Code >= http.StatusBadRequest && err.Code < 600 {
		return err.Code
	}

	return http.StatusInternalServerError
}
