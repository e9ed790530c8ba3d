// Package auth issues and verifies the HS256 session tokens used by the
// HTTP API. Tokens are stateless: validity is purely signature plus expiry,
// nothing is stored server-side and nothing can be revoked early.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sprov007/payserver/internal/common"
)

// Claims couples the registered JWT claims with the user id the token is
// bound to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs a token for userID that expires validityDuration from
// now.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies signature and expiry and returns the encoded
// user id. Expired tokens yield common.ErrTokenExpired; any other failure
// yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// TokenFromHeader extracts the token from an Authorization header value.
// Both the bare token and the "Bearer <token>" form are accepted. An empty
// header yields common.ErrMissingCredential.
func TokenFromHeader(headerValue string) (string, error) {
	headerValue = strings.TrimSpace(headerValue)
	if headerValue == "" {
		return "", common.ErrMissingCredential
	}
	if rest, ok := strings.CutPrefix(headerValue, "Bearer "); ok {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return "", common.ErrMissingCredential
		}
		return rest, nil
	}
	return headerValue, nil
}
