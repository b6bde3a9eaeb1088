package auth

import (
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenExpiry is the lifetime of issued tokens when none is configured.
const DefaultTokenExpiry = time.Hour

// ErrSigningKeyMissing means the manager was built without a secret. It is a server
// configuration fault, not a client error, so it does not wrap domain.ErrInvalidToken.
var ErrSigningKeyMissing = errors.New("jwt signing secret is not configured")

type jwtClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// JWTManager issues and verifies HS256 tokens. It implements both
// domain.TokenIssuer and domain.TokenVerifier.
type JWTManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWTManager returns a JWTManager signing with secret. A non-positive expiry
// falls back to DefaultTokenExpiry.
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTManager{secret: []byte(secret), expiry: expiry, now: time.Now}
}

func (m *JWTManager) Issue(userID string) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSigningKeyMissing
	}
	now := m.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (m *JWTManager) Verify(tokenString string) (string, error) {
	if len(m.secret) == 0 {
		return "", ErrSigningKeyMissing
	}
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", domain.ErrInvalidToken
	}
	userID := claims.Subject
	if userID == "" {
		userID = claims.UserID
	}
	if userID == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	return userID, nil
}
