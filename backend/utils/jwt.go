package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"leetstats/backend/config"
)

// SessionCookie is the name of the cookie holding the saved username.
const SessionCookie = "leetstats_session"

var ErrInvalidSession = errors.New("invalid session token")

type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(username string, now time.Time, cfg *config.Config) (string, error) {
	claims := SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseSessionToken validates the token's signature and checks its expiry
// against now rather than the wall clock.
func ParseSessionToken(tokenString string, now time.Time, cfg *config.Config) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidSession
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	claims := &SessionClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSession
	}

	if !claims.VerifyExpiresAt(now, true) || claims.Username == "" {
		return "", ErrInvalidSession
	}
	return claims.Username, nil
}
