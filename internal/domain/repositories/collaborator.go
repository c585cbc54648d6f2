package repositories

import (
	"context"

	"workbench/internal/domain/models"
	"workbench/internal/permissions"
)

// CollaboratorRepository holds the per-app grant set. The app owner is
// implicit and never stored here.
type CollaboratorRepository interface {
	// ListByApp retrieves an app's grants in insertion order, for stable
	// display. Returns an empty slice when the app has no collaborators.
	ListByApp(ctx context.Context, appID string) ([]models.Collaborator, error)

	// Upsert replaces the permission of an existing (app, principal, kind)
	// grant or appends a new one. Idempotent under repeated identical calls.
	Upsert(ctx context.Context, appID, principalID string, kind models.PrincipalKind, perm permissions.Value) error

	// Remove deletes the matching grant. Removing an absent grant is a
	// no-op, not an error.
	Remove(ctx context.Context, appID, principalID string, kind models.PrincipalKind) error

	// RemoveAllByApp deletes every grant for the app. Used by teardown,
	// inside the ambient transaction.
	RemoveAllByApp(ctx context.Context, appID string) error

	// EffectivePermission folds Combine over every grant matching the
	// principal directly or any of its group ids. Returns permissions.None
	// when no grant matches. The result is derived on every call, never
	// cached.
	EffectivePermission(ctx context.Context, appID, principalID string, groupIDs []string) (permissions.Value, error)
}
