package repository

import (
	"context"

	"telegram-chat-logger/internal/domain/model"
)

// UserRepository is the sole writer of the users table.
type UserRepository interface {
	// Upsert inserts a user on first sight of telegramID and updates
	// username/first_name on every later sight. It is a single atomic
	// statement; created_at is never modified after insert.
	Upsert(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	// List returns all users ordered by created_at descending.
	List(ctx context.Context) ([]*model.User, error)
	Count(ctx context.Context) (int, error)
}
