// Package tokens issues and verifies the HS256 access JWTs carried on
// every authenticated request.
package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docfolio/backend/internal/models"
)

// Claims is the verified content of an access token.
type Claims struct {
	UserID string
	Email  string
	Roles  []models.Role
}

// GenerateAccessToken creates a signed JWT access token for the user.
func GenerateAccessToken(secret string, u *models.User, ttl time.Duration) (string, error) {
	roles := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = string(r)
	}
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"roles": roles,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// Parse verifies a token string and extracts its claims. Only HS256 is
// accepted; expired or tampered tokens fail.
func Parse(secret, tokenStr string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	out := &Claims{}
	if sub, ok := mc["sub"].(string); ok {
		out.UserID = sub
	}
	if email, ok := mc["email"].(string); ok {
		out.Email = email
	}
	if raw, ok := mc["roles"].([]interface{}); ok {
		for _, r := range raw {
			if s, ok := r.(string); ok {
				out.Roles = append(out.Roles, models.Role(s))
			}
		}
	}
	return out, nil
}
