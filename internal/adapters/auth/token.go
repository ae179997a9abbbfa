package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventregistration/internal/domain"
)

type jwtClaims struct {
	jwt.RegisteredClaims
	Name     string `json:"name"`
	Username string `json:"username"`
}

// JWT signs and verifies admin tokens with HS256.
type JWT struct {
	secret []byte
}

// NewJWT returns a TokenIssuer and TokenVerifier backed by the given secret.
func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

var (
	_ domain.TokenIssuer   = (*JWT)(nil)
	_ domain.TokenVerifier = (*JWT)(nil)
)

// Issue signs a token for claims that expires after expiry.
func (j *JWT) Issue(claims domain.AdminClaims, expiry time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AdminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Name:     claims.Name,
		Username: claims.Username,
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses token, checks signature, algorithm and expiry, and returns its claims.
func (j *JWT) Verify(token string) (*domain.AdminClaims, error) {
	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, errors.Join(domain.ErrUnauthorized, errors.New("token has no subject"))
	}
	return &domain.AdminClaims{
		AdminID:  claims.Subject,
		Name:     claims.Name,
		Username: claims.Username,
	}, nil
}
