package service

import (
	"context"
	"fmt"
	"log/slog"

	"workbench/internal/config"
	"workbench/internal/domain"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
	"workbench/internal/domain/services"
	"workbench/internal/permissions"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// collaboratorService implements the CollaboratorService interface
type collaboratorService struct {
	collabRepo repositories.CollaboratorRepository
	authorizer services.AppAuthorizer
	catalog    *permissions.Catalog
	txManager  repositories.TransactionManager
	logger     *slog.Logger
}

// NewCollaboratorService creates a new collaborator service
func NewCollaboratorService(
	collabRepo repositories.CollaboratorRepository,
	authorizer services.AppAuthorizer,
	catalog *permissions.Catalog,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.CollaboratorService {
	return &collaboratorService{
		collabRepo: collabRepo,
		authorizer: authorizer,
		catalog:    catalog,
		txManager:  txManager,
		logger:     logger,
	}
}

// ListCollaborators retrieves an app's grants decorated with catalog labels
func (s *collaboratorService) ListCollaborators(ctx context.Context, appID, callerID string) ([]models.LabeledCollaborator, error) {
	if _, err := s.authorizer.RequirePermission(ctx, appID, callerID, permissions.Read); err != nil {
		return nil, err
	}

	return s.labeledList(ctx, appID)
}

// UpdateCollaborators upserts one grant per deduplicated target inside a
// single transactional scope and returns the refreshed grant list
func (s *collaboratorService) UpdateCollaborators(ctx context.Context, req *services.UpdateCollaboratorsRequest) ([]models.LabeledCollaborator, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	app, err := s.authorizer.RequirePermission(ctx, req.AppID, req.CallerID, permissions.Owner)
	if err != nil {
		return nil, err
	}

	// Set semantics on targets, first-seen order kept
	targets := dedupe(req.TargetPrincipalIDs)

	for _, target := range targets {
		if target == app.OwnerID && req.PrincipalKind == models.PrincipalMember {
			return nil, fmt.Errorf("%w: app owner %s cannot be granted to, ownership is implicit", domain.ErrValidation, target)
		}
		if target == req.CallerID {
			return nil, fmt.Errorf("%w: caller %s cannot change its own access", domain.ErrValidation, target)
		}
	}

	// All targets succeed or none does
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		for _, target := range targets {
			if err := s.collabRepo.Upsert(txCtx, req.AppID, target, req.PrincipalKind, req.Permission); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update collaborators on app %s: %w: %v", req.AppID, domain.ErrTransactionFailed, err)
	}

	s.logger.Info("collaborators updated",
		"app_id", req.AppID,
		"caller_id", req.CallerID,
		"targets", len(targets),
		"permission", req.Permission,
	)

	return s.labeledList(ctx, req.AppID)
}

// RemoveCollaborator deletes a single grant
func (s *collaboratorService) RemoveCollaborator(ctx context.Context, appID, callerID, principalID string, kind models.PrincipalKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown principal kind %q", domain.ErrValidation, kind)
	}
	if principalID == callerID {
		return fmt.Errorf("%w: caller %s cannot revoke its own access", domain.ErrValidation, principalID)
	}

	if _, err := s.authorizer.RequirePermission(ctx, appID, callerID, permissions.Owner); err != nil {
		return err
	}

	// Absent grants are a no-op, not an error
	if err := s.collabRepo.Remove(ctx, appID, principalID, kind); err != nil {
		return err
	}

	s.logger.Info("collaborator removed",
		"app_id", appID,
		"principal_id", principalID,
		"principal_kind", kind,
	)

	return nil
}

// PreLabelList renders the ordered label sequence a permission value implies
func (s *collaboratorService) PreLabelList(perm permissions.Value) []string {
	return s.catalog.LabelsFor(perm)
}

// labeledList loads the current grant set and decorates it with labels
func (s *collaboratorService) labeledList(ctx context.Context, appID string) ([]models.LabeledCollaborator, error) {
	grants, err := s.collabRepo.ListByApp(ctx, appID)
	if err != nil {
		return nil, err
	}

	labeled := make([]models.LabeledCollaborator, 0, len(grants))
	for _, g := range grants {
		labeled = append(labeled, models.LabeledCollaborator{
			Collaborator: g,
			Labels:       s.catalog.LabelsFor(g.Permission),
		})
	}

	return labeled, nil
}

// validateUpdateRequest validates an update collaborators request
func (s *collaboratorService) validateUpdateRequest(req *services.UpdateCollaboratorsRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.TargetPrincipalIDs,
			validation.Required,
			validation.Length(1, config.MaxCollaboratorTargets),
			validation.Each(validation.Required),
		),
		validation.Field(&req.PrincipalKind,
			validation.Required,
			validation.In(models.PrincipalMember, models.PrincipalGroup),
		),
		validation.Field(&req.Permission,
			validation.Required,
			validation.By(validateGrantableValue),
		),
	)
}

// validateGrantableValue rejects values that cannot be stored as a grant.
// Owner is implicit and never granted.
func validateGrantableValue(value interface{}) error {
	perm, ok := value.(permissions.Value)
	if !ok {
		return fmt.Errorf("invalid permission value")
	}
	if perm.IsOwner() {
		return fmt.Errorf("owner permission cannot be granted")
	}
	return nil
}

// dedupe removes duplicate ids keeping first-seen order
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
