package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenDuration is how long an issued token stays valid. There is no
	// revocation: logout only clears the client cookie.
	TokenDuration = 24 * time.Hour

	// AuthCookieName is the cookie carrying the signed token.
	AuthCookieName = "auth-token"
)

// ErrInvalidToken covers bad signatures, malformed payloads and expired
// tokens. Callers distinguish "no token" themselves before verifying.
var ErrInvalidToken = errors.New("invalid or expired token")

var tokenSecret []byte

// InitTokenService sets the process-wide signing secret.
func InitTokenService(secret string) {
	tokenSecret = []byte(secret)
}

// Claims asserts the identity of a logged-in user.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// IssueToken produces a signed token asserting {id, email}, valid for
// TokenDuration from now.
func IssueToken(userID, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	return token.SignedString(tokenSecret)
}

// VerifyToken checks the signature and expiry and returns the subject's
// user id and email.
func VerifyToken(tokenString string) (userID, email string, err error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tokenSecret, nil
	})
	if err != nil {
		return "", "", ErrInvalidToken
	}

	if !token.Valid {
		return "", "", ErrInvalidToken
	}

	return claims.UserID, claims.Email, nil
}
