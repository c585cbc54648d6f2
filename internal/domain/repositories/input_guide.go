package repositories

import (
	"context"

	"workbench/internal/domain/models"
)

// InputGuideRepository defines data access for input-guide records.
type InputGuideRepository interface {
	// Create inserts a new input guide row.
	Create(ctx context.Context, guide *models.InputGuide) error

	// ListByApp retrieves an app's input guides in creation order.
	ListByApp(ctx context.Context, appID string) ([]models.InputGuide, error)

	// DeleteByApp removes every input guide for the app.
	DeleteByApp(ctx context.Context, appID string) error
}
