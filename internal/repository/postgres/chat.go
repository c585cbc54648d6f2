package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
)

// PostgresChatRepository implements the ChatRepository interface using PostgreSQL
type PostgresChatRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewChatRepository creates a new PostgresChatRepository
func NewChatRepository(config *RepositoryConfig) repositories.ChatRepository {
	return &PostgresChatRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateChat inserts a new conversation record
func (r *PostgresChatRepository) CreateChat(ctx context.Context, chat *models.Chat) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, app_id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query,
		chat.ID,
		chat.AppID,
		chat.UserID,
		chat.Title,
		chat.CreatedAt,
		chat.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create chat: %w", err)
	}

	return nil
}

// CreateChatItem appends a turn to a chat
func (r *PostgresChatRepository) CreateChatItem(ctx context.Context, item *models.ChatItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, chat_id, app_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.ChatItems)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query,
		item.ID,
		item.ChatID,
		item.AppID,
		item.Role,
		item.Content,
		item.CreatedAt,
	); err != nil {
		return fmt.Errorf("create chat item: %w", err)
	}

	return nil
}

// ListChatsByApp retrieves an app's conversation records, newest first
func (r *PostgresChatRepository) ListChatsByApp(ctx context.Context, appID string) ([]models.Chat, error) {
	query := fmt.Sprintf(`
		SELECT id, app_id, user_id, title, created_at, updated_at
		FROM %s
		WHERE app_id = $1
		ORDER BY created_at DESC
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, appID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	chats := []models.Chat{}
	for rows.Next() {
		var chat models.Chat
		if err := rows.Scan(
			&chat.ID,
			&chat.AppID,
			&chat.UserID,
			&chat.Title,
			&chat.CreatedAt,
			&chat.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, chat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}

	return chats, nil
}

// CountByApp returns the number of chats and chat items for an app
func (r *PostgresChatRepository) CountByApp(ctx context.Context, appID string) (int, int, error) {
	query := fmt.Sprintf(`
		SELECT
			(SELECT count(*) FROM %s WHERE app_id = $1),
			(SELECT count(*) FROM %s WHERE app_id = $1)
	`, r.tables.Chats, r.tables.ChatItems)

	var chats, items int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, appID).Scan(&chats, &items); err != nil {
		return 0, 0, fmt.Errorf("count chats: %w", err)
	}

	return chats, items, nil
}

// DeleteItemsByApp removes every turn for the app
func (r *PostgresChatRepository) DeleteItemsByApp(ctx context.Context, appID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE app_id = $1
	`, r.tables.ChatItems)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, appID); err != nil {
		return fmt.Errorf("delete chat items: %w", err)
	}

	return nil
}

// DeleteByApp removes every conversation record for the app
func (r *PostgresChatRepository) DeleteByApp(ctx context.Context, appID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE app_id = $1
	`, r.tables.Chats)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, appID); err != nil {
		return fmt.Errorf("delete chats: %w", err)
	}

	return nil
}
