package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"viacampo/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "viacampo-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT session token for the given uid and
// email. The token expires after the specified duration.
func GenerateToken(uid, email string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   uid,
		"email": email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string, used for the
// revocation store.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// TokenIdentity extracts the uid (subject) and email from a valid session
// token.
func TokenIdentity(tokenString string) (uid, email string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	uid, ok = claims["sub"].(string)
	if !ok || uid == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	email, _ = claims["email"].(string)

	return uid, email, nil
}
