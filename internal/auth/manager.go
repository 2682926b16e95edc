package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"call-analytics/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Manager issues and verifies dashboard session tokens.
//
// The dashboard has a single shared password; a successful login is
// exchanged for a short-lived signed token carried in an HTTP-only cookie.
// There are no users or roles, just "may read the dashboard".
type Manager struct {
	password []byte
	secret   []byte
	ttl      time.Duration
}

const scopeDashboard = "dashboard"

// Claims is the only supported session claims shape.
type Claims struct {
	jwt.RegisteredClaims

	Scope string `json:"scope"`
}

func NewManager(cfg config.DashboardConfig) (*Manager, error) {
	if cfg.Password == "" {
		return nil, errors.New("dashboard password is required")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("dashboard session secret is required")
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{
		password: []byte(cfg.Password),
		secret:   []byte(cfg.SessionSecret),
		ttl:      ttl,
	}, nil
}

// CheckPassword compares the submitted password in constant time.
func (m *Manager) CheckPassword(got string) bool {
	return subtle.ConstantTimeCompare([]byte(got), m.password) == 1
}

// SessionTTL is exposed for cookie max-age.
func (m *Manager) SessionTTL() time.Duration { return m.ttl }

// IssueSession returns a signed dashboard session token.
func (m *Manager) IssueSession(now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
		Scope: scopeDashboard,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// VerifySession validates a session token at the given instant.
func (m *Manager) VerifySession(tokenString string, now time.Time) error {
	var claims Claims

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return err
	}

	validator := jwt.NewValidator(
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithLeeway(30*time.Second), // clock skew tolerance
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err := validator.Validate(claims.RegisteredClaims); err != nil {
		return err
	}

	if claims.Scope != scopeDashboard {
		return errors.New("scope mismatch")
	}
	return nil
}
