package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go-blog-api/internal/model"
)

// TokenService mints and validates the signed bearer tokens used for
// login. Tokens are self-contained: a subject claim (the user's email)
// plus an expiry, signed with a shared HMAC secret. Nothing is persisted
// and nothing can be revoked server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	return token.SignedString(s.secret)
}

// Validate verifies the signature and expiry and returns the subject
// claim. Every failure mode returns the same ErrInvalidToken; a caller
// must not be able to tell an expired token from a forged one.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", model.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", model.ErrInvalidToken
	}

	return claims.Subject, nil
}
