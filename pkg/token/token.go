// Package token implements the autologin tokens embedded in emailed links
// (email verification, password reset).
//
// Tokens are HMAC-SHA256 signed JWTs carrying the email, a purpose and an
// expiry, verified server-side on every decode. Malformed tokens, expired
// tokens and tokens for unknown users are indistinguishable to the caller.
package token

import (
	"errors"
	"fmt"
	"time"

	"sportsvitae/backend/internal/config"
	"sportsvitae/backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// Purpose restricts what an emailed token may be used for.
type Purpose int

const (
	PurposeVerifyEmail   Purpose = 1
	PurposePasswordReset Purpose = 2
)

// ErrInvalidToken covers every decode failure: bad signature, malformed
// payload, expiry in the past, or no user for the embedded email.
var ErrInvalidToken = errors.New("invalid or expired token")

// DefaultTTL is how long emailed links stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Encode signs a token for the given email and purpose.
func Encode(email string, purpose Purpose, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	claims := jwt.MapClaims{
		"sub":     email,
		"purpose": int(purpose),
		"exp":     time.Now().Add(ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(config.AppConfig.TokenSecret))
}

// Decode verifies a token and resolves the user it belongs to.
func Decode(db *gorm.DB, tokenString string) (*models.User, Purpose, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.TokenSecret), nil
	})
	if err != nil || !t.Valid {
		return nil, 0, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, 0, ErrInvalidToken
	}
	email, ok := claims["sub"].(string)
	if !ok {
		return nil, 0, ErrInvalidToken
	}
	purposeFloat, ok := claims["purpose"].(float64)
	if !ok {
		return nil, 0, ErrInvalidToken
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		// An unknown user is reported exactly like an expired token.
		return nil, 0, ErrInvalidToken
	}
	return &user, Purpose(purposeFloat), nil
}
