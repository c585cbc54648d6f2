package repositories

import (
	"context"

	"workbench/internal/domain/models"
)

// AppRepository defines data access for apps.
type AppRepository interface {
	// Create inserts a new app.
	// Returns domain.ErrConflict if the (team, name) pair already exists.
	Create(ctx context.Context, app *models.App) error

	// GetByID retrieves an app by id.
	// Returns domain.ErrNotFound if not found.
	GetByID(ctx context.Context, appID string) (*models.App, error)

	// ListByTeam retrieves all apps in a team, newest first.
	// Returns an empty slice if the team has none.
	ListByTeam(ctx context.Context, teamID string) ([]models.App, error)

	// Update persists an app's mutable fields (name, avatar, intro).
	// Returns domain.ErrNotFound if not found.
	Update(ctx context.Context, app *models.App) error

	// Delete removes the app row itself. Dependent records are the
	// teardown orchestrator's responsibility; this only deletes the app.
	// Returns domain.ErrNotFound if no row was deleted.
	Delete(ctx context.Context, appID string) error
}
