package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenName is the fixed capability claim carried by every issued token. The
// token grants access to all protected routes; there is no per-user identity.
const TokenName = "X-SCHOOLPAY-BACKEND-SECRET"

const tokenTTL = 60 * 24 * time.Hour // 60 days

// ErrInvalidToken is the only error handlers ever see from token validation;
// the underlying cause (bad signature, expiry, malformed token) stays here.
var ErrInvalidToken = errors.New("invalid token")

// AuthService signs and verifies the shared-secret bearer tokens.
type AuthService struct {
	secret []byte
}

func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// GenerateToken issues a new bearer token valid for 60 days.
func (s *AuthService) GenerateToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"name": TokenName,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken verifies signature and expiry and returns the decoded claims.
// Any validly signed, unexpired token is accepted regardless of its payload.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
