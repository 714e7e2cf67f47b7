// Package jwtx issues and verifies the HMAC-signed access tokens that carry a
// user's identity and role between requests. Tokens are stateless: there is
// no revocation list, a token stays valid until its expiry.
package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default access token lifetime.
const DefaultTokenTTL = 8 * time.Hour

// Claims are the access-token claims. Subject carries the user id; Role is
// what the authorization middleware enforces. Username and FullName are
// convenience mirrors for clients so they don't need an extra lookup after
// login.
type Claims struct {
	jwt.RegisteredClaims

	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// NewClaims builds minimally-correct claims for a user.
func NewClaims(
	userID, role, username, fullName string,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:     role,
		Username: username,
		FullName: fullName,
	}
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}

// ValidateIssuer checks the issuer claim when one is expected.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
