package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"petdex/pkg/domain"
)

// rolePrefix marks authorities entries that are roles rather than permissions.
const rolePrefix = "ROLE_"

// ErrMalformedToken reports a session token whose payload cannot be decoded.
var ErrMalformedToken = errors.New("malformed session token")

// tokenClaims is the backend's JWT payload shape.
type tokenClaims struct {
	Authorities string `json:"authorities"`
	jwt.RegisteredClaims
}

// Claims is the decoded payload of a session token.
type Claims struct {
	Subject     string
	Authorities []string
	ExpiresAt   time.Time
}

// DecodeToken extracts the claims of a session token without verifying its
// signature. Verification is the backend's job; the client only needs the
// payload for display and expiry checks. Pure and network-free.
func DecodeToken(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	c := Claims{Subject: tc.Subject}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	if tc.Authorities != "" {
		c.Authorities = strings.Split(tc.Authorities, ",")
	}
	return c, nil
}

// Expired reports whether the claims are past their expiry at the given
// instant. Claims without an expiry are treated as expired.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// DeriveIdentity splits the token authorities into display roles and
// permissions: entries carrying the ROLE_ prefix are roles (prefix stripped
// for display), everything else is a permission.
func DeriveIdentity(c Claims) domain.Identity {
	id := domain.Identity{Username: c.Subject}
	for _, a := range c.Authorities {
		if strings.HasPrefix(a, rolePrefix) {
			id.Roles = append(id.Roles, strings.TrimPrefix(a, rolePrefix))
		} else {
			id.Permissions = append(id.Permissions, a)
		}
	}
	return id
}
