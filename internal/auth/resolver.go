package auth

// CookieSource reads request cookies by name. *fiber.Ctx satisfies it.
type CookieSource interface {
	Cookies(key string, defaultValue ...string) string
}

// Resolver extracts the session token from a request's cookie store and
// resolves it to a validated identity. Any failure yields no identity:
// callers cannot distinguish a missing cookie from a bad one.
type Resolver struct {
	tokens     TokenService
	cookieName string
	logger     Logger
}

// ResolverOption customizes Resolver construction.
type ResolverOption func(*Resolver)

// WithResolverLogger overrides the default logger.
func WithResolverLogger(logger Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a Resolver reading the named session cookie.
func NewResolver(tokens TokenService, cookieName string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		tokens:     tokens,
		cookieName: cookieName,
		logger:     defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// CookieName returns the cookie the resolver reads tokens from.
func (r *Resolver) CookieName() string {
	return r.cookieName
}

// Resolve returns the validated identity for the request, or nil.
func (r *Resolver) Resolve(c CookieSource) *Identity {
	raw := c.Cookies(r.cookieName)
	if raw == "" {
		return nil
	}

	claims, err := r.tokens.Validate(raw)
	if err != nil {
		r.logger.Debug("session resolve failed", "error", err)
		return nil
	}

	return claims.Identity()
}
