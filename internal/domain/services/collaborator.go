package services

import (
	"context"

	"workbench/internal/domain/models"
	"workbench/internal/permissions"
)

// UpdateCollaboratorsRequest represents one batch grant update: give every
// target principal the same permission on the app.
type UpdateCollaboratorsRequest struct {
	AppID              string               `json:"-"`
	CallerID           string               `json:"-"`
	TargetPrincipalIDs []string             `json:"principal_ids"`
	PrincipalKind      models.PrincipalKind `json:"principal_kind"`
	Permission         permissions.Value    `json:"permission"`
}

// CollaboratorService defines business logic for collaborator management.
type CollaboratorService interface {
	// ListCollaborators retrieves an app's grants decorated with catalog
	// labels. Requires read permission on the app. The app owner is
	// implicit and never appears in the list.
	ListCollaborators(ctx context.Context, appID, callerID string) ([]models.LabeledCollaborator, error)

	// UpdateCollaborators upserts one grant per deduplicated target and
	// returns the refreshed grant list. Requires owner-level permission.
	// All upserts share one transactional scope: either every target is
	// granted or none is.
	// Fails with domain.ErrValidation when targets are empty, contain the
	// app owner, or contain the caller itself.
	UpdateCollaborators(ctx context.Context, req *UpdateCollaboratorsRequest) ([]models.LabeledCollaborator, error)

	// RemoveCollaborator deletes a single grant. Requires owner-level
	// permission. Removing an absent grant is a no-op.
	RemoveCollaborator(ctx context.Context, appID, callerID, principalID string, kind models.PrincipalKind) error

	// PreLabelList renders the ordered label sequence a permission value
	// implies. Pure, no side effects - used to preview a change before
	// confirming it.
	PreLabelList(perm permissions.Value) []string
}
