package repositories

import (
	"context"

	"workbench/internal/domain/models"
)

// OutLinkRepository defines data access for share links.
type OutLinkRepository interface {
	// Create inserts a new share link.
	Create(ctx context.Context, link *models.OutLink) error

	// ListByApp retrieves an app's share links in creation order.
	ListByApp(ctx context.Context, appID string) ([]models.OutLink, error)

	// DeleteByApp removes every share link for the app.
	DeleteByApp(ctx context.Context, appID string) error
}
