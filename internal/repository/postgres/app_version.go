package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
)

// PostgresAppVersionRepository implements the AppVersionRepository interface using PostgreSQL
type PostgresAppVersionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAppVersionRepository creates a new PostgresAppVersionRepository
func NewAppVersionRepository(config *RepositoryConfig) repositories.AppVersionRepository {
	return &PostgresAppVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new version snapshot
func (r *PostgresAppVersionRepository) Create(ctx context.Context, version *models.AppVersion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, app_id, label, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.AppVersions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query,
		version.ID,
		version.AppID,
		version.Label,
		version.Payload,
		version.CreatedAt,
	); err != nil {
		return fmt.Errorf("create app version: %w", err)
	}

	return nil
}

// ListByApp retrieves an app's snapshots, newest first
func (r *PostgresAppVersionRepository) ListByApp(ctx context.Context, appID string) ([]models.AppVersion, error) {
	query := fmt.Sprintf(`
		SELECT id, app_id, label, payload, created_at
		FROM %s
		WHERE app_id = $1
		ORDER BY created_at DESC
	`, r.tables.AppVersions)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, appID)
	if err != nil {
		return nil, fmt.Errorf("list app versions: %w", err)
	}
	defer rows.Close()

	versions := []models.AppVersion{}
	for rows.Next() {
		var v models.AppVersion
		if err := rows.Scan(&v.ID, &v.AppID, &v.Label, &v.Payload, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan app version: %w", err)
		}
		versions = append(versions, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate app versions: %w", err)
	}

	return versions, nil
}

// DeleteByApp removes every snapshot for the app
func (r *PostgresAppVersionRepository) DeleteByApp(ctx context.Context, appID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE app_id = $1
	`, r.tables.AppVersions)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, appID); err != nil {
		return fmt.Errorf("delete app versions: %w", err)
	}

	return nil
}
