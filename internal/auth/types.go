package auth

import "fmt"

// Role is the session role carried by a token.
type Role = string

const (
	// RoleAdmin is the only role the back office knows about.
	RoleAdmin Role = "admin"
)

// Identity is the decoded, validated result of a session token. It exists
// only for the duration of one request and is never persisted.
type Identity struct {
	SubjectID string
	Email     string
	Role      Role
}

// IsAdmin reports whether the identity may access the admin surface.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetCookieName() string
	GetSecureCookies() bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
