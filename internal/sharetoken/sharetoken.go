// Package sharetoken issues and validates the signed tokens embedded in
// public proposal URLs. A token carries only the proposal ID; everything
// else is loaded fresh on each request so unpublishing takes effect
// immediately.
package sharetoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid share token")

type claims struct {
	ProposalID string `json:"pid"`
	jwt.RegisteredClaims
}

// Issue signs a share token for the given proposal. A zero ttl means the
// token never expires.
func Issue(secret string, proposalID uuid.UUID, ttl time.Duration) (string, error) {
	c := claims{
		ProposalID: proposalID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// Parse validates a share token and returns the proposal ID it grants
// access to.
func Parse(secret, tokenString string) (uuid.UUID, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(c.ProposalID)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
