package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
	"workbench/internal/permissions"
)

// PostgresCollaboratorRepository implements the CollaboratorRepository
// interface using PostgreSQL. One row per (app, principal, kind); the
// unique constraint makes Upsert a plain ON CONFLICT update.
type PostgresCollaboratorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewCollaboratorRepository creates a new PostgresCollaboratorRepository
func NewCollaboratorRepository(config *RepositoryConfig) repositories.CollaboratorRepository {
	return &PostgresCollaboratorRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListByApp retrieves an app's grants in insertion order
func (r *PostgresCollaboratorRepository) ListByApp(ctx context.Context, appID string) ([]models.Collaborator, error) {
	query := fmt.Sprintf(`
		SELECT id, app_id, principal_id, principal_kind, permission, created_at, updated_at
		FROM %s
		WHERE app_id = $1
		ORDER BY created_at, id
	`, r.tables.Collaborators)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, appID)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	defer rows.Close()

	grants := []models.Collaborator{}
	for rows.Next() {
		var c models.Collaborator
		if err := rows.Scan(
			&c.ID,
			&c.AppID,
			&c.PrincipalID,
			&c.PrincipalKind,
			&c.Permission,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		grants = append(grants, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collaborators: %w", err)
	}

	return grants, nil
}

// Upsert replaces an existing grant's permission or appends a new grant
func (r *PostgresCollaboratorRepository) Upsert(ctx context.Context, appID, principalID string, kind models.PrincipalKind, perm permissions.Value) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, app_id, principal_id, principal_kind, permission, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (app_id, principal_id, principal_kind)
		DO UPDATE SET permission = EXCLUDED.permission, updated_at = now()
	`, r.tables.Collaborators)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, uuid.NewString(), appID, principalID, kind, perm); err != nil {
		return fmt.Errorf("upsert collaborator: %w", err)
	}

	return nil
}

// Remove deletes the matching grant; absent grants are a no-op
func (r *PostgresCollaboratorRepository) Remove(ctx context.Context, appID, principalID string, kind models.PrincipalKind) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE app_id = $1 AND principal_id = $2 AND principal_kind = $3
	`, r.tables.Collaborators)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, appID, principalID, kind); err != nil {
		return fmt.Errorf("remove collaborator: %w", err)
	}

	return nil
}

// RemoveAllByApp deletes every grant for the app
func (r *PostgresCollaboratorRepository) RemoveAllByApp(ctx context.Context, appID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE app_id = $1
	`, r.tables.Collaborators)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, appID); err != nil {
		return fmt.Errorf("remove all collaborators: %w", err)
	}

	return nil
}

// EffectivePermission folds the union over every matching grant. The fold
// happens here as a single aggregate query; the zero value falls out of
// COALESCE when nothing matches.
func (r *PostgresCollaboratorRepository) EffectivePermission(ctx context.Context, appID, principalID string, groupIDs []string) (permissions.Value, error) {
	// bit_or is the SQL spelling of Combine over the matching grant set
	query := fmt.Sprintf(`
		SELECT COALESCE(bit_or(permission), 0)
		FROM %s
		WHERE app_id = $1
		  AND (
			(principal_id = $2 AND principal_kind = 'member')
			OR (principal_id = ANY($3) AND principal_kind = 'group')
		  )
	`, r.tables.Collaborators)

	if groupIDs == nil {
		groupIDs = []string{}
	}

	var value int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, appID, principalID, groupIDs).Scan(&value); err != nil {
		return permissions.None, fmt.Errorf("effective permission: %w", err)
	}

	return permissions.Value(value), nil
}
