package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"health-bridge-server/internal/config"
	"health-bridge-server/internal/models"
)

// TokenTypeWorker discriminates worker session tokens from account tokens.
// Account tokens carry no type; worker tokens always carry this value.
const TokenTypeWorker = "worker"

// Claims represents the JWT claims for doctor/government accounts.
type Claims struct {
	UserID       string      `json:"user_id"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
	Name         string      `json:"name"`
	HospitalName string      `json:"hospital_name,omitempty"`
	HospitalID   string      `json:"hospital_id,omitempty"`
	jwt.RegisteredClaims
}

// WorkerClaims represents the JWT claims for worker sessions issued via OTP.
type WorkerClaims struct {
	WorkerID  string `json:"worker_id"`
	UniqueID  string `json:"unique_id"`
	Name      string `json:"name"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateAccountToken signs an access token for a doctor or government user.
func GenerateAccountToken(user *models.User, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWTExpirationHours) * time.Hour)
	claims := &Claims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		Name:         user.Name,
		HospitalName: user.HospitalName,
		HospitalID:   user.HospitalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign account token: %w", err)
	}
	return tokenString, nil
}

// GenerateWorkerToken signs a session token for a worker after OTP login.
func GenerateWorkerToken(worker *models.Worker, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.JWTExpirationHours) * time.Hour)
	claims := &WorkerClaims{
		WorkerID:  worker.ID,
		UniqueID:  worker.UniqueID,
		Name:      worker.Name,
		TokenType: TokenTypeWorker,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   worker.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign worker token: %w", err)
	}
	return tokenString, nil
}

// ValidateAccountToken validates an account JWT. Worker tokens are rejected
// even though they share the signing secret.
func ValidateAccountToken(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}
	if err := parseInto(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.Role == "" {
		return nil, fmt.Errorf("not an account token")
	}
	return claims, nil
}

// ValidateWorkerToken validates a worker JWT, rejecting account tokens.
func ValidateWorkerToken(tokenString string, secretKey string) (*WorkerClaims, error) {
	claims := &WorkerClaims{}
	if err := parseInto(tokenString, secretKey, claims); err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeWorker {
		return nil, fmt.Errorf("not a worker token")
	}
	return claims, nil
}

func parseInto(tokenString, secretKey string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
