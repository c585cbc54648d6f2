package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
)

// PostgresAppRepository implements the AppRepository interface using PostgreSQL
type PostgresAppRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAppRepository creates a new PostgresAppRepository
func NewAppRepository(config *RepositoryConfig) repositories.AppRepository {
	return &PostgresAppRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new app
func (r *PostgresAppRepository) Create(ctx context.Context, app *models.App) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, team_id, owner_id, name, avatar, intro, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, r.tables.Apps)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		app.ID,
		app.TeamID,
		app.OwnerID,
		app.Name,
		app.Avatar,
		app.Intro,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("app '%s': %w", app.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create app: %w", err)
	}

	return nil
}

// GetByID retrieves an app by id
func (r *PostgresAppRepository) GetByID(ctx context.Context, appID string) (*models.App, error) {
	query := fmt.Sprintf(`
		SELECT id, team_id, owner_id, name, avatar, intro, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Apps)

	var app models.App
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, appID).Scan(
		&app.ID,
		&app.TeamID,
		&app.OwnerID,
		&app.Name,
		&app.Avatar,
		&app.Intro,
		&app.CreatedAt,
		&app.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("app %s: %w", appID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get app: %w", err)
	}

	return &app, nil
}

// ListByTeam retrieves all apps in a team, newest first
func (r *PostgresAppRepository) ListByTeam(ctx context.Context, teamID string) ([]models.App, error) {
	query := fmt.Sprintf(`
		SELECT id, team_id, owner_id, name, avatar, intro, created_at, updated_at
		FROM %s
		WHERE team_id = $1
		ORDER BY created_at DESC
	`, r.tables.Apps)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list apps: %w", err)
	}
	defer rows.Close()

	apps := []models.App{}
	for rows.Next() {
		var app models.App
		if err := rows.Scan(
			&app.ID,
			&app.TeamID,
			&app.OwnerID,
			&app.Name,
			&app.Avatar,
			&app.Intro,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan app: %w", err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate apps: %w", err)
	}

	return apps, nil
}

// Update persists an app's mutable fields
func (r *PostgresAppRepository) Update(ctx context.Context, app *models.App) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, avatar = $3, intro = $4, updated_at = $5
		WHERE id = $1
	`, r.tables.Apps)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		app.ID,
		app.Name,
		app.Avatar,
		app.Intro,
		app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update app: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("app %s: %w", app.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the app row itself
func (r *PostgresAppRepository) Delete(ctx context.Context, appID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Apps)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, appID)
	if err != nil {
		return fmt.Errorf("delete app: %w", err)
	}

	// A concurrent teardown may have removed the row between the service's
	// existence check and this statement - surface that as not found so
	// the second call never reports a silent success.
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("app %s: %w", appID, domain.ErrNotFound)
	}

	return nil
}
