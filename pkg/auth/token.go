// Package auth issues and verifies HS256 employer tokens. A token only
// identifies the employer for CV visibility and posting ownership.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "job-portal-backend"

var ErrInvalidToken = errors.New("invalid token")

type EmployerClaims struct {
	EmployerID int64 `json:"employer_id"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	key     []byte
	nowFunc func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{key: []byte(secret), nowFunc: time.Now}
}

// Enabled reports whether a signing secret is configured.
func (m *TokenManager) Enabled() bool {
	return m != nil && len(m.key) > 0
}

func (m *TokenManager) IssueEmployerToken(employerID int64, expire time.Duration) (string, error) {
	if !m.Enabled() {
		return "", errors.New("token signing secret not configured")
	}
	now := m.nowFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, EmployerClaims{
		EmployerID: employerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(employerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	})
	return token.SignedString(m.key)
}

// ParseEmployerToken validates signature, issuer and expiry and returns
// the employer id.
func (m *TokenManager) ParseEmployerToken(tokenString string) (int64, error) {
	if !m.Enabled() {
		return 0, ErrInvalidToken
	}
	claims := &EmployerClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.key, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.nowFunc),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.EmployerID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.EmployerID, nil
}
