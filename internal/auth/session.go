package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"recipehub/internal/config"
	"recipehub/internal/model"
)

var (
	ErrSecretRequired = errors.New("session secret is required")
	ErrInvalidToken   = errors.New("invalid session token")
)

// Claims carries the user profile inside the session token. The registered
// Subject claim is the user id; Session() copies it into the session's user
// identifier field.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates session tokens.
type SessionManager struct {
	cfg config.SessionConfig
}

// NewSessionManager builds a SessionManager.
func NewSessionManager(cfg config.SessionConfig) (*SessionManager, error) {
	if cfg.Secret == "" {
		return nil, ErrSecretRequired
	}
	return &SessionManager{cfg: cfg}, nil
}

// CookieName returns the configured session cookie name.
func (m *SessionManager) CookieName() string {
	return m.cfg.CookieName
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.cfg.TTL
}

// Issue signs a session token for the given user.
func (m *SessionManager) Issue(u *model.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expires := now.Add(m.cfg.TTL)
	claims := Claims{
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			Subject:   u.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	encoded, err := tkn.SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return encoded, expires, nil
}

// Parse validates a session token and extracts its claims.
func (m *SessionManager) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(m.cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Session builds the session object from token claims. The user id is the
// token's subject claim.
func (m *SessionManager) Session(token string) (*model.Session, error) {
	claims, err := m.Parse(token)
	if err != nil {
		return nil, err
	}
	return &model.Session{
		User: model.SessionUser{
			ID:      claims.Subject,
			Name:    claims.Name,
			Email:   claims.Email,
			Picture: claims.Picture,
		},
		Expires: claims.ExpiresAt.Time,
	}, nil
}
