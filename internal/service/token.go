package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
)

// TokenSigner issues and verifies HS256 access tokens. The signing key is
// fixed for the process lifetime; rotating it invalidates every
// outstanding token.
type TokenSigner struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokenSigner(secret string, accessTTL time.Duration) *TokenSigner {
	return &TokenSigner{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// Issue signs a token for subject expiring accessTTL from now. The second
// return value is the remaining lifetime in seconds, as sent to clients.
func (s *TokenSigner) Issue(subject string) (string, int64, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.accessTTL.Seconds()), nil
}

// Verify returns the token subject. Failures collapse into exactly three
// kinds so callers can tell "deny" from "prompt refresh":
// ErrTokenExpired, ErrTokenSignatureInvalid, ErrTokenMalformed.
func (s *TokenSigner) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))

	switch {
	case err == nil && token.Valid:
		if claims.Subject == "" {
			return "", ErrTokenMalformed
		}
		return claims.Subject, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, ErrTokenSignatureInvalid):
		return "", ErrTokenSignatureInvalid
	default:
		return "", ErrTokenMalformed
	}
}
