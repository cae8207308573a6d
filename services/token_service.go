package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenService creates and validates the JWTs used by the HTTP layer.
type TokenService struct {
	secretKey []byte
	lifetime  time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secretKey: []byte(secret),
		lifetime:  24 * time.Hour,
	}
}

// Generate signs an access token for the given user.
func (s *TokenService) Generate(userID, username string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"admin":    isAdmin,
		"exp":      time.Now().Add(s.lifetime).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Validate parses a token string and returns its claims.
func (s *TokenService) Validate(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
