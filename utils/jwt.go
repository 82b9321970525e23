package utils

import (
	"errors"
	"time"

	"cleanslate/config"

	"github.com/golang-jwt/jwt"
)

// Roles carried in demo tokens.
const (
	RoleCustomer = "customer"
	RoleWorker   = "worker"
	RoleAdmin    = "admin"
)

// Claims identifies the caller of an API request.
type Claims struct {
	Subject string
	Role    string
	Name    string
}

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT carrying the subject, role and display name.
// The token expires after the specified duration.
func GenerateToken(subject, role, name string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"name": name,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
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

// ParseClaims validates the token and extracts subject, role and name.
func ParseClaims(tokenString string) (*Claims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	name, _ := mc["name"].(string)
	if sub == "" || role == "" {
		return nil, errors.New("token does not carry 'sub' and 'role' claims")
	}
	return &Claims{Subject: sub, Role: role, Name: name}, nil
}
