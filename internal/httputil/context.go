package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	principalIDKey contextKey = "principalID"
	teamIDKey      contextKey = "teamID"
)

// WithPrincipal adds the authenticated principal and its team to the
// request context. Set exactly once, by the auth middleware.
func WithPrincipal(r *http.Request, principalID, teamID string) *http.Request {
	ctx := context.WithValue(r.Context(), principalIDKey, principalID)
	ctx = context.WithValue(ctx, teamIDKey, teamID)
	return r.WithContext(ctx)
}

// GetPrincipalID retrieves the caller principal id from context, returns
// empty string if not set.
func GetPrincipalID(r *http.Request) string {
	principalID, _ := r.Context().Value(principalIDKey).(string)
	return principalID
}

// GetTeamID retrieves the caller's team id from context, returns empty
// string if not set.
func GetTeamID(r *http.Request) string {
	teamID, _ := r.Context().Value(teamIDKey).(string)
	return teamID
}
