package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"workbench/internal/config"
	"workbench/internal/domain"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
	"workbench/internal/domain/services"
	"workbench/internal/permissions"
)

// appService implements the AppService interface, including the atomic
// teardown of an app and every record that depends on it.
type appService struct {
	appRepo     repositories.AppRepository
	chatRepo    repositories.ChatRepository
	outLinkRepo repositories.OutLinkRepository
	versionRepo repositories.AppVersionRepository
	guideRepo   repositories.InputGuideRepository
	collabRepo  repositories.CollaboratorRepository
	authorizer  services.AppAuthorizer
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewAppService creates a new app service
func NewAppService(
	appRepo repositories.AppRepository,
	chatRepo repositories.ChatRepository,
	outLinkRepo repositories.OutLinkRepository,
	versionRepo repositories.AppVersionRepository,
	guideRepo repositories.InputGuideRepository,
	collabRepo repositories.CollaboratorRepository,
	authorizer services.AppAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.AppService {
	return &appService{
		appRepo:     appRepo,
		chatRepo:    chatRepo,
		outLinkRepo: outLinkRepo,
		versionRepo: versionRepo,
		guideRepo:   guideRepo,
		collabRepo:  collabRepo,
		authorizer:  authorizer,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateApp creates a new app; the creator becomes its implicit owner
func (s *appService) CreateApp(ctx context.Context, req *services.CreateAppRequest) (*models.App, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	app := &models.App{
		ID:        uuid.NewString(),
		TeamID:    req.TeamID,
		OwnerID:   req.OwnerID,
		Name:      strings.TrimSpace(req.Name),
		Avatar:    req.Avatar,
		Intro:     req.Intro,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("app created",
		"id", app.ID,
		"name", app.Name,
		"team_id", app.TeamID,
		"owner_id", app.OwnerID,
	)

	return app, nil
}

// GetApp retrieves an app; requires read permission
func (s *appService) GetApp(ctx context.Context, appID, callerID string) (*models.App, error) {
	return s.authorizer.RequirePermission(ctx, appID, callerID, permissions.Read)
}

// ListApps retrieves the team's apps visible to the caller
func (s *appService) ListApps(ctx context.Context, teamID, callerID string) ([]models.App, error) {
	apps, err := s.appRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	visible := []models.App{}
	for i := range apps {
		effective, err := s.authorizer.EffectivePermission(ctx, &apps[i], callerID)
		if err != nil {
			return nil, err
		}
		if effective.Contains(permissions.Read) {
			visible = append(visible, apps[i])
		}
	}

	return visible, nil
}

// UpdateApp updates an app's display fields; requires write permission
func (s *appService) UpdateApp(ctx context.Context, appID, callerID string, req *services.UpdateAppRequest) (*models.App, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	app, err := s.authorizer.RequirePermission(ctx, appID, callerID, permissions.Write)
	if err != nil {
		return nil, err
	}

	app.Name = strings.TrimSpace(req.Name)
	app.Avatar = req.Avatar
	app.Intro = req.Intro
	app.UpdatedAt = time.Now()

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info("app updated", "id", app.ID, "name", app.Name)

	return app, nil
}

// DeleteApp removes the app and every dependent record in one atomic unit.
// Step order is fixed to keep teardown deterministic and auditable, most
// dependent records first; every step keys off the app id alone.
func (s *appService) DeleteApp(ctx context.Context, appID, callerID string) error {
	// Existence and permission are checked before the transaction opens
	if _, err := s.authorizer.RequirePermission(ctx, appID, callerID, permissions.Owner); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.chatRepo.DeleteItemsByApp(txCtx, appID); err != nil {
			return err
		}
		if err := s.chatRepo.DeleteByApp(txCtx, appID); err != nil {
			return err
		}
		if err := s.outLinkRepo.DeleteByApp(txCtx, appID); err != nil {
			return err
		}
		if err := s.versionRepo.DeleteByApp(txCtx, appID); err != nil {
			return err
		}
		if err := s.guideRepo.DeleteByApp(txCtx, appID); err != nil {
			return err
		}
		if err := s.collabRepo.RemoveAllByApp(txCtx, appID); err != nil {
			return err
		}
		return s.appRepo.Delete(txCtx, appID)
	})
	if err != nil {
		// A concurrent teardown winning the race surfaces as not found,
		// never as a silent success
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("teardown of app %s: %w: %v", appID, domain.ErrTransactionFailed, err)
	}

	s.logger.Info("app deleted", "id", appID, "caller_id", callerID)

	return nil
}

// validateCreateRequest validates a create app request
func (s *appService) validateCreateRequest(req *services.CreateAppRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TeamID, validation.Required),
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxAppNameLength),
		),
		validation.Field(&req.Intro, validation.Length(0, config.MaxAppIntroLength)),
	)
}

// validateUpdateRequest validates an update app request
func (s *appService) validateUpdateRequest(req *services.UpdateAppRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxAppNameLength),
		),
		validation.Field(&req.Intro, validation.Length(0, config.MaxAppIntroLength)),
	)
}
