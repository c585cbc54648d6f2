package service

import (
	"context"
	"fmt"
	"log/slog"

	"workbench/internal/domain"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
	"workbench/internal/domain/services"
	"workbench/internal/permissions"
)

// permissionAuthorizer implements the AppAuthorizer interface by folding
// grants. An app's creator is its implicit owner; everyone else gets the
// union of their individual grant and any group grants.
type permissionAuthorizer struct {
	appRepo    repositories.AppRepository
	collabRepo repositories.CollaboratorRepository
	directory  repositories.MemberDirectory
	logger     *slog.Logger
}

// NewPermissionAuthorizer creates a new grant-based app authorizer
func NewPermissionAuthorizer(
	appRepo repositories.AppRepository,
	collabRepo repositories.CollaboratorRepository,
	directory repositories.MemberDirectory,
	logger *slog.Logger,
) services.AppAuthorizer {
	return &permissionAuthorizer{
		appRepo:    appRepo,
		collabRepo: collabRepo,
		directory:  directory,
		logger:     logger,
	}
}

// EffectivePermission derives the permission available to a principal on an
// app. Recomputed on every call; never stored.
func (a *permissionAuthorizer) EffectivePermission(ctx context.Context, app *models.App, principalID string) (permissions.Value, error) {
	// Ownership overrides every grant
	if app.OwnerID == principalID {
		return permissions.Owner, nil
	}

	// Group membership is a black box owned by the directory
	groupIDs, err := a.directory.ListGroupIDs(ctx, principalID)
	if err != nil {
		return permissions.None, fmt.Errorf("resolve groups for %s: %w", principalID, err)
	}

	value, err := a.collabRepo.EffectivePermission(ctx, app.ID, principalID, groupIDs)
	if err != nil {
		return permissions.None, err
	}

	return value, nil
}

// RequirePermission loads the app and enforces that the principal's
// effective permission contains need.
func (a *permissionAuthorizer) RequirePermission(ctx context.Context, appID, principalID string, need permissions.Value) (*models.App, error) {
	app, err := a.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	effective, err := a.EffectivePermission(ctx, app, principalID)
	if err != nil {
		return nil, err
	}

	if !effective.Contains(need) {
		a.logger.Debug("permission denied",
			"app_id", appID,
			"principal_id", principalID,
			"effective", effective,
			"required", need,
		)
		return nil, fmt.Errorf("principal %s on app %s: requires %b, holds %b: %w",
			principalID, appID, uint32(need), uint32(effective), domain.ErrForbidden)
	}

	return app, nil
}
