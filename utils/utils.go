package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/config"
	"github.com/ray-remotestate/enfes/middlewares"
	"golang.org/x/crypto/bcrypt"
)

const (
	SessionTTL = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

func GenerateTokens(userID uuid.UUID, roles []string) (sessionToken string, refreshToken string, err error) {
	now := time.Now()

	sessionToken, err = GenerateSessionToken(userID, roles)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	refreshTokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshToken, err = refreshTokenObj.SignedString(config.SecretKey)
	if err != nil {
		return "", "", err
	}

	return sessionToken, refreshToken, nil
}

func GenerateSessionToken(userID uuid.UUID, roles []string) (string, error) {
	now := time.Now()

	claims := &middlewares.Claims{
		UserID: userID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(config.SecretKey)
}

// ParseRefreshToken validates a refresh token and returns the user id it was issued for.
func ParseRefreshToken(token string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return config.SecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return uuid.Parse(claims.Subject)
}

func HashPassword(pw string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(bytes), err
}
