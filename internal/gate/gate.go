package gate

import (
	"strings"

	"github.com/jobfinder/jobfinder/internal/auth"
)

// PathClass is the protection class of a request path.
type PathClass int

const (
	// PathPublic requires no session.
	PathPublic PathClass = iota
	// PathAdminProtected requires an admin session.
	PathAdminProtected
)

// Action is what the gate tells the transport layer to do.
type Action int

const (
	// ActionAllow lets the request proceed to its handler.
	ActionAllow Action = iota
	// ActionUnauthorized responds with a structured 401 body.
	ActionUnauthorized
	// ActionRedirect sends the client to the login surface.
	ActionRedirect
)

// Decision is the gate's verdict for a single request.
type Decision struct {
	Action     Action
	RedirectTo string
	// ClearCookie signals that the session cookie carried by the request
	// was rejected and should be removed from the client.
	ClearCookie bool
}

// LoginPath is where unauthenticated UI requests are redirected.
const LoginPath = "/admin/login"

// Endpoints on the admin surface that must stay reachable without a
// session, otherwise nobody could ever log in (or out).
var publicAdminPaths = map[string]struct{}{
	"/admin/login":          {},
	"/api/admin/login":      {},
	"/api/admin/auth-check": {},
	"/api/admin/logout":     {},
}

// Gate decides whether requests may proceed based on path class and
// resolved identity.
type Gate struct{}

// New returns a Gate with the default path rules.
func New() *Gate {
	return &Gate{}
}

// Classify maps a request path to its protection class. Everything
// outside the admin surfaces is public.
func (g *Gate) Classify(path string) PathClass {
	path = normalizePath(path)

	if _, ok := publicAdminPaths[path]; ok {
		return PathPublic
	}

	if path == "/admin" || strings.HasPrefix(path, "/admin/") {
		return PathAdminProtected
	}
	if path == "/api/admin" || strings.HasPrefix(path, "/api/admin/") {
		return PathAdminProtected
	}

	return PathPublic
}

// Decide renders the verdict for a path and an identity resolved from
// the request (nil when no valid session was presented).
//
// Protected API paths get a 401; protected UI paths get a redirect to
// the login page. A request that carried a cookie which failed to
// resolve gets it cleared on the way out.
func (g *Gate) Decide(path string, identity *auth.Identity, hadCookie bool) Decision {
	if g.Classify(path) == PathPublic {
		return Decision{Action: ActionAllow}
	}

	if identity != nil && identity.IsAdmin() {
		return Decision{Action: ActionAllow}
	}

	// Any cookie that did not resolve to an admin session is useless on
	// a protected path: clear it so the client stops presenting it.
	// That covers stale and forged cookies as well as valid sessions
	// carrying a non-admin role.
	clear := hadCookie

	if isAPIPath(path) {
		return Decision{Action: ActionUnauthorized, ClearCookie: clear}
	}

	return Decision{
		Action:      ActionRedirect,
		RedirectTo:  LoginPath,
		ClearCookie: clear,
	}
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(normalizePath(path), "/api/")
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	// Collapse a single trailing slash so /admin/ and /admin match the
	// same rules.
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimRight(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
