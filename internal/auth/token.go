package auth

import (
	"time"

	errors "github.com/aditirto/identity-service/internal"
	"github.com/aditirto/identity-service/internal/core/rbac"
	"github.com/golang-jwt/jwt/v5"
)

// JWTTokenGenerator signs stateless access tokens with a symmetric secret.
// There is no refresh or revocation: tokens live until expiry, and the
// authorization check provides best-effort revocation by re-reading the
// user's active flag on every request.
type JWTTokenGenerator struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

func NewJWTTokenGenerator(secret, algorithm string, ttl time.Duration) *JWTTokenGenerator {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &JWTTokenGenerator{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}
}

func (g *JWTTokenGenerator) Generate(email string, role rbac.Role) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(g.method, claims)
	return token.SignedString(g.secret)
}

// Validate verifies signature and expiry. Every failure mode collapses into
// the credentials error so callers cannot distinguish a forged token from
// an expired one.
func (g *JWTTokenGenerator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != g.method.Alg() {
			return nil, errors.ErrInvalidCredentials
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidCredentials
	}
	return claims, nil
}
