package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultResetTokenTTL is how long a password-reset token stays valid.
const DefaultResetTokenTTL = 10 * time.Minute

// Verification failures are typed so callers can tell an expired token from
// a tampered one. The HTTP layer deliberately collapses all of them to the
// same "no user" outcome.
var (
	ErrTokenExpired   = errors.New("reset token expired")
	ErrTokenMalformed = errors.New("reset token malformed")
	ErrTokenInvalid   = errors.New("reset token invalid")
)

// resetClaims carries the single user-id claim plus the standard expiry.
type resetClaims struct {
	ResetPassword uint `json:"reset_password"`
	jwt.RegisteredClaims
}

// GenerateResetToken issues a signed, expiring token embedding the user id.
func GenerateResetToken(userID uint, secret string, expiresIn time.Duration) (string, error) {
	claims := &resetClaims{
		ResetPassword: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyResetToken decodes and verifies a reset token, returning the user id
// it was issued for. It fails closed: any decode, signature, or expiry
// problem yields an error and a zero user id.
func VerifyResetToken(tokenString, secret string) (uint, error) {
	claims := &resetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, ErrTokenMalformed
		default:
			return 0, ErrTokenInvalid
		}
	}
	if !token.Valid || claims.ResetPassword == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.ResetPassword, nil
}
