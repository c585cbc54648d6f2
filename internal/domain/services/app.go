package services

import (
	"context"

	"workbench/internal/domain/models"
)

// CreateAppRequest represents a request to create an app
type CreateAppRequest struct {
	TeamID  string `json:"-"`
	OwnerID string `json:"-"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Intro   string `json:"intro"`
}

// UpdateAppRequest represents a request to update an app's display fields
type UpdateAppRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Intro  string `json:"intro"`
}

// AppService defines business logic operations for apps, including the
// atomic teardown of an app and everything that depends on it.
type AppService interface {
	// CreateApp creates a new app; the creator becomes its implicit owner.
	CreateApp(ctx context.Context, req *CreateAppRequest) (*models.App, error)

	// GetApp retrieves an app. Requires read permission.
	GetApp(ctx context.Context, appID, callerID string) (*models.App, error)

	// ListApps retrieves the team's apps the caller can see: apps the
	// caller owns or holds any grant on.
	ListApps(ctx context.Context, teamID, callerID string) ([]models.App, error)

	// UpdateApp updates an app's display fields. Requires write permission.
	UpdateApp(ctx context.Context, appID, callerID string, req *UpdateAppRequest) (*models.App, error)

	// DeleteApp removes the app and every dependent record (chat items,
	// chats, share links, version snapshots, input guides, grants) in one
	// atomic unit. Requires owner-level permission.
	// Fails with domain.ErrNotFound if the app does not exist, checked
	// before the transaction opens; a failed teardown surfaces as
	// domain.ErrTransactionFailed with every prior step rolled back.
	DeleteApp(ctx context.Context, appID, callerID string) error
}
