// Package auth provides JWT session credentials and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/aldeanavidad/tienda/config"
)

// TokenTTL is the session credential lifetime. The admin panel keeps a tab
// open over a working day, so half a day before forcing a re-login.
const TokenTTL = 12 * time.Hour

// ErrNoSecret is returned when JWT_SECRET is not configured.
// internal/server checks this at boot so it never surfaces per request.
var ErrNoSecret = errors.New("auth: JWT_SECRET not configured")

// Claims holds the typed JWT payload. Field names mirror the wire format
// the frontend already consumes.
type Claims struct {
	UserID uint   `json:"id"`
	Role   string `json:"rol"`
	Email  string `json:"email"`
	Name   string `json:"nombre"`
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	s := config.JWTSecret()
	if s == "" {
		return nil, ErrNoSecret
	}
	return []byte(s), nil
}

// CheckSecret reports whether a signing secret is configured.
func CheckSecret() error {
	_, err := secret()
	return err
}

// GenerateToken creates a signed session credential for the given user.
func GenerateToken(userID uint, role, email, name string) (string, error) {
	key, err := secret()
	if err != nil {
		return "", err
	}

	claims := Claims{
		UserID: userID,
		Role:   role,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// ValidateToken parses and validates a JWT string, rejecting bad signatures
// and expired credentials.
func ValidateToken(t string) (*Claims, error) {
	key, err := secret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
// bcrypt's comparison is constant-time.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
