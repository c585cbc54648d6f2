package models

import "github.com/golang-jwt/jwt/v5"

// WorkspaceClaims is the JWT claims structure issued by the workspace
// identity provider. The subject is the principal id used everywhere in the
// core; group membership is deliberately NOT carried in the token - groups
// are resolved per request through the member directory so revocations take
// effect immediately.
type WorkspaceClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	TeamID               string `json:"team_id"`
	Role                 string `json:"role"` // "authenticated" or "anon"
}

// GetPrincipalID returns the principal id from the JWT subject claim.
func (c *WorkspaceClaims) GetPrincipalID() string {
	return c.Subject
}
