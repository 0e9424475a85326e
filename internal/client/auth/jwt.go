// Package auth inspects access tokens issued by the Prompt Master API.
//
// The client never holds the signing secret, so tokens are parsed without
// signature verification; the server remains the authority and answers 401
// for anything it does not accept. Locally the claims are only used to decide
// whether a persisted session is still worth restoring.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/promptmaster/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims mirrors the payload the backend puts into access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ParseClaims decodes the token payload without verifying the signature.
func ParseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// TokenExpiry returns the time encoded in the exp claim. Tokens without exp
// are rejected as invalid: the client cannot reason about their lifetime.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := ParseClaims(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", common.ErrInvalidToken)
	}
	return claims.ExpiresAt.Time, nil
}

// CheckToken returns nil when the token is well formed and not expired at now,
// common.ErrTokenExpired when exp has passed, and common.ErrInvalidToken for
// anything malformed.
func CheckToken(tokenString string, now time.Time) error {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return err
	}
	if !exp.After(now) {
		return common.ErrTokenExpired
	}
	return nil
}

// GenerateToken signs a token with the given claims. It exists for tests and
// local tooling that emulate the backend.
func GenerateToken(userID int64, username string, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
