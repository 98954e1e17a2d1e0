package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pos-backend/pkg/authz"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

// Claims carries the actor's identity and capability bitset so permission
// checks never need a user lookup per request.
type Claims struct {
	UserID       uint   `json:"userId"`
	Capabilities uint8  `json:"caps"`
	Superuser    bool   `json:"su"`
	TokenType    string `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) Grant() authz.Grant {
	return authz.Grant{
		UserID:    c.UserID,
		Caps:      authz.Capability(c.Capabilities),
		Superuser: c.Superuser,
	}
}

func GenerateToken(userID uint, caps authz.Capability, superuser bool, tokenType, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:       userID,
		Capabilities: uint8(caps),
		Superuser:    superuser,
		TokenType:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
