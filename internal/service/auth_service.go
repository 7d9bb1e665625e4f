package service

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// RoleAdmin is the only role a token is ever issued for.
	RoleAdmin = "admin"

	// DefaultTokenTTL applies when no positive TTL is configured.
	DefaultTokenTTL = 8 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService issues and verifies admin bearer tokens
type AuthService interface {
	Login(password string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents the JWT claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	adminPassword []byte
	jwtSecret     []byte
	ttl           time.Duration
	now           func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(adminPassword, jwtSecret string, ttl time.Duration) AuthService {
	return newAuthService(adminPassword, jwtSecret, ttl, time.Now)
}

func newAuthService(adminPassword, jwtSecret string, ttl time.Duration, now func() time.Time) *authService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &authService{
		adminPassword: []byte(adminPassword),
		jwtSecret:     []byte(jwtSecret),
		ttl:           ttl,
		now:           now,
	}
}

// Login compares the submitted password with the configured admin password
// and returns a signed token on match
func (s *authService) Login(password string) (string, error) {
	if len(s.adminPassword) == 0 || subtle.ConstantTimeCompare([]byte(password), s.adminPassword) != 1 {
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *authService) generateToken() (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
