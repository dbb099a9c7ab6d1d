// Package auth provides JWT token issue and validation for the API.
// The gauntlet is a single-user tool: a token is exchanged for the
// configured passphrase and gates every ranking route.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is how long an issued token stays valid.
const DefaultTokenExpiry = 30 * 24 * time.Hour

// DefaultLeeway for token validation.
const DefaultLeeway = 30 * time.Second

// ErrInvalidToken is returned when token validation fails.
var ErrInvalidToken = errors.New("invalid token")

// ErrExpiredToken is returned when the token has expired.
var ErrExpiredToken = errors.New("token has expired")

// ErrEmptySubject is returned when the subject is empty.
var ErrEmptySubject = errors.New("subject cannot be empty")

// Claims are the JWT claims carried by gauntlet tokens.
type Claims struct {
	jwt.RegisteredClaims
}

// Service signs and validates HS256 tokens.
type Service struct {
	secret []byte
	expiry time.Duration
	leeway time.Duration
}

// NewService creates a token service with the default expiry and leeway.
func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		expiry: DefaultTokenExpiry,
		leeway: DefaultLeeway,
	}
}

// NewServiceWithExpiry creates a token service with a custom token expiry.
func NewServiceWithExpiry(secret string, expiry time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		expiry: expiry,
		leeway: DefaultLeeway,
	}
}

// GenerateToken creates a signed token for the given subject.
func (s *Service) GenerateToken(subject string) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and validates a token string, returning its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithLeeway(s.leeway))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
