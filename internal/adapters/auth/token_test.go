package auth

import (
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_Issue(t *testing.T) {
	secret := "test-secret"
	m := NewJWTManager(secret, time.Hour)

	token, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "user-123", claims.UserID)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTManager_Verify_roundtrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.Issue("user-123")
	require.NoError(t, err)

	userID, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTManager_Verify_rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	expired := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("user-123")
	require.NoError(t, err)

	otherKey, err := NewJWTManager("other-secret", time.Hour).Issue("user-123")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"expired", expiredToken},
		{"wrong signing key", otherKey},
		{"alg none", noneToken},
		{"missing expiry", noExpiry},
		{"missing subject", noSubject},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := m.Verify(tt.token)
			require.ErrorIs(t, err, domain.ErrInvalidToken)
			assert.Empty(t, userID)
		})
	}
}

func TestJWTManager_MissingSecret(t *testing.T) {
	m := NewJWTManager("", time.Hour)

	_, err := m.Issue("user-123")
	require.ErrorIs(t, err, ErrSigningKeyMissing)

	_, err = m.Verify("anything")
	require.ErrorIs(t, err, ErrSigningKeyMissing)
	assert.NotErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTManager_DefaultExpiry(t *testing.T) {
	m := NewJWTManager("s", 0)
	assert.Equal(t, DefaultTokenExpiry, m.expiry)
}
