package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tuifinancial/finserv/internal/models"
)

const SessionTokenTTL = 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("invalid session token")
	ErrTokenExpired = errors.New("expired session token")
)

type SessionClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies session tokens. The signing key is
// process-wide configuration loaded once at startup.
type TokenIssuer struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenIssuer(secretKey []byte) *TokenIssuer {
	return &TokenIssuer{secretKey: secretKey, now: time.Now}
}

// Issue produces an HS256 token carrying the user's email as subject plus
// the role claim, expiring one session TTL from now.
func (issuer *TokenIssuer) Issue(email string, role models.Role) (string, error) {
	now := issuer.now()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(issuer.secretKey)
}

// Verify checks signature and expiry. ErrTokenExpired and ErrTokenInvalid
// are distinguished internally; the HTTP boundary collapses both into a
// single unauthenticated outcome.
func (issuer *TokenIssuer) Verify(rawToken string) (*SessionClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrTokenInvalid
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return issuer.secretKey, nil
	}, jwt.WithTimeFunc(issuer.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(issuer.now()) {
		return nil, ErrTokenExpired
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
