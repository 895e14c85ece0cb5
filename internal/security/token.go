package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kelseyhightower/envconfig"

	"github.com/adhub/adhub/internal/ldap"
)

const (
	// Default session lifetime, and the extended lifetime granted when the
	// login request asks to be remembered.
	accessTokenLifetime   = 30 * time.Minute
	rememberMeLifetime    = 30 * 24 * time.Hour
	tokenSigningAlgorithm = "HS256"
)

// ErrInvalidToken is the single outcome for any verification failure:
// bad signature, malformed token, or expiry all look the same to callers.
var ErrInvalidToken = errors.New("could not validate credentials")

type Config struct {
	Secret string `envconfig:"SECRET_KEY" default:"change-this-in-production-use-openssl-rand-hex-32"`
}

// Claims is the session payload: the identity derived at login plus the
// sealed login password for directory operations that need to re-bind.
type Claims struct {
	DisplayName    string   `json:"display_name,omitempty"`
	Email          string   `json:"email,omitempty"`
	Domain         string   `json:"domain"`
	Groups         []string `json:"groups"`
	IsAdmin        bool     `json:"is_admin"`
	SealedPassword string   `json:"spw,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() *ldap.Identity {
	return &ldap.Identity{
		Username:    c.Subject,
		DisplayName: c.DisplayName,
		Email:       c.Email,
		Domain:      c.Domain,
		Groups:      c.Groups,
		IsAdmin:     c.IsAdmin,
	}
}

// Manager issues and verifies HS256 session tokens.
type Manager struct {
	secret []byte
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process token configuration: %w", err)
	}
	return &config, nil
}

func NewManager(config *Config) *Manager {
	return &Manager{secret: []byte(config.Secret)}
}

// Issue creates a signed session token for the identity. The plaintext
// password is sealed into the token so admin-credentialed directory writes
// can reuse it without the server storing it anywhere.
func (m *Manager) Issue(identity *ldap.Identity, password string, rememberMe bool) (token string, expiresIn time.Duration, err error) {
	lifetime := accessTokenLifetime
	if rememberMe {
		lifetime = rememberMeLifetime
	}

	sealed, err := m.SealPassword(password)
	if err != nil {
		return "", 0, fmt.Errorf("failed to seal credentials: %w", err)
	}

	now := time.Now()
	claims := &Claims{
		DisplayName:    identity.DisplayName,
		Email:          identity.Email,
		Domain:         identity.Domain,
		Groups:         identity.Groups,
		IsAdmin:        identity.IsAdmin,
		SealedPassword: sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, lifetime, nil
}

// Verify parses and validates a session token. Every failure mode maps to
// ErrInvalidToken; callers must not distinguish expiry from forgery.
func (m *Manager) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{tokenSigningAlgorithm}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
