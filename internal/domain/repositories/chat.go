package repositories

import (
	"context"

	"workbench/internal/domain/models"
)

// ChatRepository defines data access for conversation records and turns.
type ChatRepository interface {
	// CreateChat inserts a new conversation record.
	CreateChat(ctx context.Context, chat *models.Chat) error

	// CreateChatItem appends a turn to a chat.
	CreateChatItem(ctx context.Context, item *models.ChatItem) error

	// ListChatsByApp retrieves an app's conversation records, newest first.
	ListChatsByApp(ctx context.Context, appID string) ([]models.Chat, error)

	// CountByApp returns the number of chats and chat items for an app.
	// Read path used to verify teardown in tests and admin views.
	CountByApp(ctx context.Context, appID string) (chats int, items int, err error)

	// DeleteItemsByApp removes every turn for the app.
	DeleteItemsByApp(ctx context.Context, appID string) error

	// DeleteByApp removes every conversation record for the app.
	DeleteByApp(ctx context.Context, appID string) error
}
