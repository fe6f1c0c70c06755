package auth

import (
	"errors"
	"sync"
	"time"

	"train-task-tracker/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

const devSecret = "development-insecure-secret-change-me"

var (
	mu          sync.RWMutex
	jwtSecret   = []byte(devSecret)
	jwtIssuer   = "train-task-tracker"
	jwtAudience = "train-task-tracker-clients"
	tokenTTL    = 24 * time.Hour
)

// Configure installs the signing settings from the loaded config. Empty
// fields keep their current value.
func Configure(cfg config.AuthConfig) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.JWTSecret != "" {
		jwtSecret = []byte(cfg.JWTSecret)
	}
	if cfg.Issuer != "" {
		jwtIssuer = cfg.Issuer
	}
	if cfg.Audience != "" {
		jwtAudience = cfg.Audience
	}
	if cfg.TokenTTL > 0 {
		tokenTTL = cfg.TokenTTL
	}
}

// UsingDevSecret reports whether tokens are still signed with the built-in secret.
func UsingDevSecret() bool {
	mu.RLock()
	defer mu.RUnlock()
	return string(jwtSecret) == devSecret
}

// Claims represents the JWT claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given user
func GenerateToken(userID, username string) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string) (*Claims, error) {
	mu.RLock()
	secret, issuer, audience := jwtSecret, jwtIssuer, jwtAudience
	mu.RUnlock()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
