package usecase

import (
	"context"

	"telegram-chat-logger/internal/domain/model"
	"telegram-chat-logger/internal/domain/ports/repository"
	"telegram-chat-logger/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes user-related operations used by ingestion and the
// read API.
type UserUseCase interface {
	Upsert(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

func (u *userUC) Upsert(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Upsert")()
	return u.users.Upsert(ctx, telegramID, username, firstName)
}

func (u *userUC) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.GetByTelegramID")()
	return u.users.FindByTelegramID(ctx, telegramID)
}

func (u *userUC) List(ctx context.Context) ([]*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.List")()
	return u.users.List(ctx)
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	defer logging.TraceDuration(u.log, "UserUC.Count")()
	return u.users.Count(ctx)
}
