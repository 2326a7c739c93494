// Package session carries the authenticated caller explicitly through the
// negotiation components instead of keeping a cached global user.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpired      = errors.New("session expired")
	ErrInvalidRole  = errors.New("invalid session role")
)

// Session is the authenticated caller of an operation.
type Session struct {
	UserID    string
	Name      string
	Role      Role
	ExpiresAt time.Time
}

func (s Session) IsClient() bool   { return s.Role == RoleClient }
func (s Session) IsProvider() bool { return s.Role == RoleProvider }
func (s Session) IsAdmin() bool    { return s.Role == RoleAdmin }

// Valid reports whether the session identifies a caller with a known role.
func (s Session) Valid() bool {
	if strings.TrimSpace(s.UserID) == "" {
		return false
	}
	switch s.Role {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// Claims is the JWT payload of a session token.
type Claims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// Manager issues, parses and refreshes session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for s with a fresh expiry and returns the stamped session.
func (m *Manager) Issue(s Session) (Session, string, error) {
	if !s.Valid() {
		return Session{}, "", ErrInvalidRole
	}
	now := m.now().UTC()
	s.ExpiresAt = now.Add(m.ttl)

	claims := Claims{
		UserID: s.UserID,
		Name:   s.Name,
		Role:   string(s.Role),
		StandardClaims: jwt.StandardClaims{
			Subject:   s.UserID,
			IssuedAt:  now.Unix(),
			ExpiresAt: s.ExpiresAt.Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Session{}, "", fmt.Errorf("sign session token: %w", err)
	}
	return s, token, nil
}

// Parse validates token and returns the session it carries.
func (m *Manager) Parse(token string) (Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Session{}, ErrInvalidToken
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return Session{}, ErrExpired
		}
		return Session{}, ErrInvalidToken
	}
	if !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	s := Session{
		UserID:    claims.UserID,
		Name:      claims.Name,
		Role:      Role(claims.Role),
		ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
	}
	if !s.Valid() {
		return Session{}, ErrInvalidRole
	}
	if !s.ExpiresAt.After(m.now()) {
		return Session{}, ErrExpired
	}
	return s, nil
}

// Refresh extends a still-valid session and returns its new token.
func (m *Manager) Refresh(s Session) (Session, string, error) {
	if !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(m.now()) {
		return Session{}, "", ErrExpired
	}
	return m.Issue(s)
}
