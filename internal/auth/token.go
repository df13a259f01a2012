package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified content of a session token.
type Claims struct {
	Subject string
	Email   string
}

// TokenService signs and verifies session tokens. It is constructed once and
// injected into whatever needs it; there is no package-level state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Sign issues a fresh bearer token for the given identity.
func (s *TokenService) Sign(uid, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and returns its claims. Expiry is reported as
// ErrSessionExpired so callers can tell the user to log in again; every
// other failure collapses to ErrInvalidToken.
func (s *TokenService) Verify(tokenStr string) (Claims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrSessionExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, _ := mapc["sub"].(string)
	if sub == "" {
		return Claims{}, ErrInvalidToken
	}
	email, _ := mapc["email"].(string)
	return Claims{Subject: sub, Email: email}, nil
}
