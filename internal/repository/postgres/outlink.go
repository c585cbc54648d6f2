package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
)

// PostgresOutLinkRepository implements the OutLinkRepository interface using PostgreSQL
type PostgresOutLinkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewOutLinkRepository creates a new PostgresOutLinkRepository
func NewOutLinkRepository(config *RepositoryConfig) repositories.OutLinkRepository {
	return &PostgresOutLinkRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a new share link
func (r *PostgresOutLinkRepository) Create(ctx context.Context, link *models.OutLink) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, app_id, share_id, name, usage_hits, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.OutLinks)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query,
		link.ID,
		link.AppID,
		link.ShareID,
		link.Name,
		link.UsageHits,
		link.CreatedAt,
	); err != nil {
		return fmt.Errorf("create out link: %w", err)
	}

	return nil
}

// ListByApp retrieves an app's share links in creation order
func (r *PostgresOutLinkRepository) ListByApp(ctx context.Context, appID string) ([]models.OutLink, error) {
	query := fmt.Sprintf(`
		SELECT id, app_id, share_id, name, usage_hits, created_at
		FROM %s
		WHERE app_id = $1
		ORDER BY created_at, id
	`, r.tables.OutLinks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, appID)
	if err != nil {
		return nil, fmt.Errorf("list out links: %w", err)
	}
	defer rows.Close()

	links := []models.OutLink{}
	for rows.Next() {
		var link models.OutLink
		if err := rows.Scan(
			&link.ID,
			&link.AppID,
			&link.ShareID,
			&link.Name,
			&link.UsageHits,
			&link.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan out link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate out links: %w", err)
	}

	return links, nil
}

// DeleteByApp removes every share link for the app
func (r *PostgresOutLinkRepository) DeleteByApp(ctx context.Context, appID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE app_id = $1
	`, r.tables.OutLinks)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, appID); err != nil {
		return fmt.Errorf("delete out links: %w", err)
	}

	return nil
}
