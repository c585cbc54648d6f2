package repositories

import (
	"context"

	"workbench/internal/domain/models"
)

// AppVersionRepository defines data access for version snapshots.
type AppVersionRepository interface {
	// Create inserts a new version snapshot.
	Create(ctx context.Context, version *models.AppVersion) error

	// ListByApp retrieves an app's snapshots, newest first.
	ListByApp(ctx context.Context, appID string) ([]models.AppVersion, error)

	// DeleteByApp removes every snapshot for the app.
	DeleteByApp(ctx context.Context, appID string) error
}
