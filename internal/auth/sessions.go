package auth

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

type Claims struct {
	Sub       string `json:"sub"`
	Role      string `json:"role"` // "admin", "prof" or "eleve"
	LoginCode string `json:"login_code"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies signed session tokens. There is no
// server-side session state; the token is the session.
type Sessions struct {
	hmac []byte
	ttl  time.Duration

	NowFunc func() time.Time // mockable
}

// NewSessions fails when secret is empty: the process must refuse to
// start rather than sign tokens with a guessable key.
func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	if secret == "" {
		return nil, errors.New("auth: session secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{hmac: []byte(secret), ttl: ttl, NowFunc: time.Now}, nil
}

// Issue signs a session token for u.
func (s *Sessions) Issue(u User) (string, error) {
	now := s.NowFunc()
	claims := &Claims{
		Sub:       u.ID,
		Role:      string(u.Role),
		LoginCode: u.LoginCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "portail",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.hmac)
}

// Verify returns the claims of a valid token, or nil for anything else:
// bad signature, wrong algorithm, malformed, expired. Failures are
// logged for operability but never propagated.
func (s *Sessions) Verify(tokenStr string) *Claims {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return s.NowFunc() }))
	if err != nil || !token.Valid {
		if err != nil {
			log.Printf("auth: token rejected: %v", err)
		}
		return nil
	}
	c, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	return c
}

// TTL is the configured session lifetime, used for the cookie Max-Age.
func (s *Sessions) TTL() time.Duration { return s.ttl }
