package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	at time.Time
}

func (c *fakeClock) Now() time.Time { return c.at }

func TestAuthService_LoginRejectsWrongPassword(t *testing.T) {
	svc := NewAuthService("s3cret", "jwt-secret", 0)

	_, err := svc.Login("S3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_EmptyAdminPasswordNeverMatches(t *testing.T) {
	svc := NewAuthService("", "jwt-secret", time.Hour)

	_, err := svc.Login("")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_TokenCarriesAdminRole(t *testing.T) {
	clock := &fakeClock{at: time.Unix(1_700_000_000, 0)}
	svc := newAuthService("s3cret", "jwt-secret", 0, clock.Now)

	token, err := svc.Login("s3cret")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, claims.Role)
	require.Equal(t, clock.at, claims.IssuedAt.Time)
	require.Equal(t, clock.at.Add(8*time.Hour), claims.ExpiresAt.Time)
}

// A token is accepted for the whole TTL and rejected from the expiry instant on.
func TestProperty_TokenValidForTTL(t *testing.T) {
	properties := gopter.NewProperties(nil)
	start := time.Unix(1_700_000_000, 0)

	properties.Property("token verifies before expiry and fails at or after it", prop.ForAll(
		func(offset int64) bool {
			clock := &fakeClock{at: start}
			svc := newAuthService("s3cret", "jwt-secret", 8*time.Hour, clock.Now)

			token, err := svc.Login("s3cret")
			if err != nil {
				t.Logf("FAIL: login: %v", err)
				return false
			}

			clock.at = start.Add(time.Duration(offset) * time.Second)
			_, err = svc.ValidateToken(token)

			if offset < int64((8 * time.Hour).Seconds()) {
				return err == nil
			}
			return errors.Is(err, ErrInvalidToken) && errors.Is(err, jwt.ErrTokenExpired)
		},
		gen.Int64Range(0, 2*8*3600),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAuthService_ValidateTokenRejections(t *testing.T) {
	clock := &fakeClock{at: time.Unix(1_700_000_000, 0)}
	svc := newAuthService("s3cret", "jwt-secret", time.Hour, clock.Now)
	other := newAuthService("s3cret", "another-secret", time.Hour, clock.Now)

	foreign, err := other.Login("s3cret")
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: RoleAdmin}).
		SignedString([]byte("jwt-secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.at.Add(time.Hour)),
		},
	}).SignedString([]byte("jwt-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.token",
		"wrong secret":   foreign,
		"missing expiry": noExpiry,
		"wrong method":   hs512,
	} {
		_, err := svc.ValidateToken(token)
		require.ErrorIs(t, err, ErrInvalidToken, name)
	}
}
