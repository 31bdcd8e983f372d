package repository

import (
	"context"

	"telegram-chat-logger/internal/domain/model"
)

// MessageRepository is the sole writer of the messages table. Inserts are
// unconditional: duplicates from transport redelivery are accepted rather
// than deduplicated.
type MessageRepository interface {
	Insert(ctx context.Context, userID, telegramMessageID int64, text string) (*model.Message, error)
	// ListRecent returns up to limit messages joined with their owning
	// user, newest first. The limit is normalized via model.NormalizeLimit.
	ListRecent(ctx context.Context, limit int) ([]*model.MessageWithUser, error)
	Count(ctx context.Context) (int, error)
}
