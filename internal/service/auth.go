package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medcamp/mcms/internal/errs"
)

// TokenClaims is the JWT claim set issued to logged-in users. The email is
// the account identity everywhere else in the system.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies the HS256 session tokens used by the API.
type AuthService struct {
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs an AuthService signing with secretKey; tokens
// expire after ttlMinutes.
func NewAuthService(secretKey string, ttlMinutes int) *AuthService {
	return &AuthService{
		secret: []byte(secretKey),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// IssueToken signs a token for an email.
func (s *AuthService) IssueToken(email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a token, returning its claims. Malformed,
// expired and mis-signed tokens all come back as the same 401.
func (s *AuthService) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.NewUnauthorizedError("Invalid or expired token", errs.CodeInvalidToken)
	}
	if claims.Email == "" {
		return nil, errs.NewUnauthorizedError("Invalid or expired token", errs.CodeInvalidToken)
	}
	return claims, nil
}
