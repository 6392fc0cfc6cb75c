package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ServiceClaims are the claims carried by internal service tokens. The
// scheduler and operator tooling authenticate with these; guests never do.
type ServiceClaims struct {
	Caller string `json:"caller"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("INTERNAL_JWT_SECRET"))
}

// GenerateServiceToken issues a short-lived internal token. Used by ops
// tooling and tests.
func GenerateServiceToken(caller, scope string, ttl time.Duration) (string, error) {
	claims := ServiceClaims{
		Caller: caller,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseServiceToken validates an internal token and returns its claims.
func ParseServiceToken(tokenStr string) (*ServiceClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ServiceClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ServiceClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
