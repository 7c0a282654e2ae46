package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/Marketplace_Hub/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// Claims mirrors the token issued by the auth service.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Caller turns the claims into the request identity, keeping the raw token for
// calls forwarded to the auth service.
func (c *Claims) Caller(token string) *models.Caller {
	return &models.Caller{
		ID:       c.UserID,
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
		Token:    token,
	}
}

// GenerateToken signs an HS256 token. A zero expiry issues a token without exp.
func GenerateToken(user models.User, secret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(expiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses tokenString and checks its signature and expiry.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token carries no user id")
	}
	return claims, nil
}
