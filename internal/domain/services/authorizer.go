package services

import (
	"context"

	"workbench/internal/domain/models"
	"workbench/internal/permissions"
)

// AppAuthorizer resolves what a principal may do on an app.
//
// Design principle: services call the authorizer before operating on an app.
// Effective permission is always derived at call time - implicit ownership
// plus the fold of every matching grant - and never persisted or cached.
type AppAuthorizer interface {
	// EffectivePermission computes the permission available to a principal
	// on the given app: the owner sentinel when the principal is the app's
	// creator, otherwise the union of all grants matching the principal
	// directly or through any of its groups. Returns permissions.None when
	// nothing matches.
	EffectivePermission(ctx context.Context, app *models.App, principalID string) (permissions.Value, error)

	// RequirePermission loads the app and fails with domain.ErrForbidden
	// unless the principal's effective permission contains need.
	// Returns domain.ErrNotFound if the app does not exist.
	// On success the loaded app is returned so callers avoid a second read.
	RequirePermission(ctx context.Context, appID, principalID string, need permissions.Value) (*models.App, error)
}
