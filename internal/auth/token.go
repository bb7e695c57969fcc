package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL matches the session length clients expect.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the decoded payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"userId"`
	Role         string `json:"role"`
	Neighborhood string `json:"neighborhood,omitempty"`
}

var (
	// ErrInvalidToken covers malformed payloads and signature mismatches.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken means the token was well-formed but past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// TokenManager issues and verifies HMAC-signed session tokens. It is
// stateless: nothing is persisted, tokens die only by expiry.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager with the process-wide signing
// secret. Secret validation happens at config load, before this runs.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the identity claims with the default TTL.
func (m *TokenManager) Issue(userID, role, neighborhood string) (string, error) {
	return m.IssueWithTTL(userID, role, neighborhood, m.ttl)
}

// IssueWithTTL signs a token with an explicit lifetime.
func (m *TokenManager) IssueWithTTL(userID, role, neighborhood string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:       userID,
		Role:         role,
		Neighborhood: neighborhood,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the claims.
// Expiry and signature failures are distinguishable so callers can log
// them apart even though clients see a uniform 401.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
