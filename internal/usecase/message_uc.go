package usecase

import (
	"context"

	"telegram-chat-logger/internal/domain/model"
	"telegram-chat-logger/internal/domain/ports/repository"
	"telegram-chat-logger/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ MessageUseCase = (*messageUC)(nil)

type MessageUseCase interface {
	Record(ctx context.Context, userID, telegramMessageID int64, text string) (*model.Message, error)
	ListRecent(ctx context.Context, limit int) ([]*model.MessageWithUser, error)
	Count(ctx context.Context) (int, error)
}

type messageUC struct {
	messages repository.MessageRepository
	log      *zerolog.Logger
}

func NewMessageUseCase(messages repository.MessageRepository, logger *zerolog.Logger) *messageUC {
	return &messageUC{messages: messages, log: logger}
}

func (m *messageUC) Record(ctx context.Context, userID, telegramMessageID int64, text string) (*model.Message, error) {
	defer logging.TraceDuration(m.log, "MessageUC.Record")()
	return m.messages.Insert(ctx, userID, telegramMessageID, text)
}

func (m *messageUC) ListRecent(ctx context.Context, limit int) ([]*model.MessageWithUser, error) {
	defer logging.TraceDuration(m.log, "MessageUC.ListRecent")()
	return m.messages.ListRecent(ctx, limit)
}

func (m *messageUC) Count(ctx context.Context) (int, error) {
	defer logging.TraceDuration(m.log, "MessageUC.Count")()
	return m.messages.Count(ctx)
}
