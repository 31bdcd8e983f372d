package usecase

import (
	"context"

	"telegram-chat-logger/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	Totals(ctx context.Context) (users int, messages int, err error)
}

type statsUC struct {
	users    repository.UserRepository
	messages repository.MessageRepository

	log *zerolog.Logger
}

func NewStatsUseCase(users repository.UserRepository, messages repository.MessageRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{users: users, messages: messages, log: logger}
}

func (s *statsUC) Totals(ctx context.Context) (int, int, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	messages, err := s.messages.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	return users, messages, nil
}
