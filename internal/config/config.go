package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Load when the file omits a value.
const (
	DefaultAddress         = ":3000"
	DefaultDatabaseDSN     = "file:jobfinder.db?cache=shared&mode=rwc"
	DefaultCookieName      = "jobfinder_session"
	DefaultTokenExpiration = 168 // hours
	DefaultIssuer          = "jobfinder"
	DefaultAdminEmail      = "admin@jobfinder.com"
	DefaultAdminPassword   = "admin123"
	DefaultDispatchTimeout = 5 * time.Second
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// AuthConfig configures sessions and the built-in admin identity.
type AuthConfig struct {
	SigningKey      string   `yaml:"signing_key"`
	TokenExpiration int      `yaml:"token_expiration"`
	Issuer          string   `yaml:"issuer"`
	Audience        []string `yaml:"audience"`
	CookieName      string   `yaml:"cookie_name"`
	SecureCookies   bool     `yaml:"secure_cookies"`
	AdminEmail      string   `yaml:"admin_email"`
	AdminPassword   string   `yaml:"admin_password"`
}

// NotifyConfig configures best-effort push dispatch.
type NotifyConfig struct {
	Enabled         bool     `yaml:"enabled"`
	DispatchTimeout Duration `yaml:"dispatch_timeout"`
}

// Duration wraps time.Duration so YAML values like "5s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// GetSigningKey returns the HMAC signing key.
func (c AuthConfig) GetSigningKey() string { return c.SigningKey }

// GetTokenExpiration returns the token lifetime in hours.
func (c AuthConfig) GetTokenExpiration() int { return c.TokenExpiration }

// GetIssuer returns the token issuer claim.
func (c AuthConfig) GetIssuer() string { return c.Issuer }

// GetAudience returns the token audience claims.
func (c AuthConfig) GetAudience() []string { return c.Audience }

// GetCookieName returns the session cookie name.
func (c AuthConfig) GetCookieName() string { return c.CookieName }

// GetSecureCookies reports whether cookies carry the Secure attribute.
func (c AuthConfig) GetSecureCookies() bool { return c.SecureCookies }

// Load reads and parses the YAML config at path, expanding ${VAR}
// references from the environment and applying defaults. A missing file
// is not an error: the defaults stand alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else {
			content := expandEnvVars(string(b))
			if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
				return nil, fmt.Errorf("parse yaml: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if cfg.Auth.SigningKey == "" {
		return nil, fmt.Errorf("auth.signing_key is required")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Database.DSN == "" {
		c.Database.DSN = DefaultDatabaseDSN
	}
	if c.Auth.TokenExpiration <= 0 {
		c.Auth.TokenExpiration = DefaultTokenExpiration
	}
	if c.Auth.Issuer == "" {
		c.Auth.Issuer = DefaultIssuer
	}
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = DefaultCookieName
	}
	if c.Auth.AdminEmail == "" {
		c.Auth.AdminEmail = DefaultAdminEmail
	}
	if c.Auth.AdminPassword == "" {
		c.Auth.AdminPassword = DefaultAdminPassword
	}
	if c.Auth.SigningKey == "" {
		c.Auth.SigningKey = os.Getenv("JOBFINDER_SIGNING_KEY")
	}
	if c.Notify.DispatchTimeout <= 0 {
		c.Notify.DispatchTimeout = Duration(DefaultDispatchTimeout)
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} references with environment values.
// Unknown variables are left untouched.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		name := match[2 : len(match)-1]
		if value := os.Getenv(name); value != "" {
			return value
		}
		return match
	})
}
