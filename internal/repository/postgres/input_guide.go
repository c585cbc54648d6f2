package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
)

// PostgresInputGuideRepository implements the InputGuideRepository interface using PostgreSQL
type PostgresInputGuideRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewInputGuideRepository creates a new PostgresInputGuideRepository
func NewInputGuideRepository(config *RepositoryConfig) repositories.InputGuideRepository {
	return &PostgresInputGuideRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new input guide row
func (r *PostgresInputGuideRepository) Create(ctx context.Context, guide *models.InputGuide) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, app_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.tables.InputGuides)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query,
		guide.ID,
		guide.AppID,
		guide.Text,
		guide.CreatedAt,
	); err != nil {
		return fmt.Errorf("create input guide: %w", err)
	}

	return nil
}

// ListByApp retrieves an app's input guides in creation order
func (r *PostgresInputGuideRepository) ListByApp(ctx context.Context, appID string) ([]models.InputGuide, error) {
	query := fmt.Sprintf(`
		SELECT id, app_id, text, created_at
		FROM %s
		WHERE app_id = $1
		ORDER BY created_at, id
	`, r.tables.InputGuides)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, appID)
	if err != nil {
		return nil, fmt.Errorf("list input guides: %w", err)
	}
	defer rows.Close()

	guides := []models.InputGuide{}
	for rows.Next() {
		var g models.InputGuide
		if err := rows.Scan(&g.ID, &g.AppID, &g.Text, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan input guide: %w", err)
		}
		guides = append(guides, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate input guides: %w", err)
	}

	return guides, nil
}

// DeleteByApp removes every input guide for the app
func (r *PostgresInputGuideRepository) DeleteByApp(ctx context.Context, appID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE app_id = $1
	`, r.tables.InputGuides)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, appID); err != nil {
		return fmt.Errorf("delete input guides: %w", err)
	}

	return nil
}
