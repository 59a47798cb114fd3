// Package auth contains password hashing and session token primitives.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity: the principal id in Subject and
// the role tag alongside it.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateToken signs a session token for p valid for validityDuration.
func GenerateToken(p models.Principal, secretKey []byte, validityDuration time.Duration, now time.Time) (string, time.Time, error) {
	expires := now.Add(validityDuration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Role: string(p.Role),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expires, nil
}

// ParseToken verifies tokenString and returns the principal it carries.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (models.Principal, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Principal{}, common.ErrTokenExpired
		}
		return models.Principal{}, common.ErrInvalidToken
	}
	if !token.Valid {
		return models.Principal{}, common.ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.Principal{}, common.ErrInvalidToken
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.Principal{}, common.ErrInvalidToken
	}

	return models.Principal{ID: id, Role: role}, nil
}
