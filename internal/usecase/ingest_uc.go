package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"telegram-chat-logger/internal/domain"
	"telegram-chat-logger/internal/domain/model"
	"telegram-chat-logger/internal/domain/ports/adapter"
	"telegram-chat-logger/internal/infra/logging"
	"telegram-chat-logger/internal/infra/metrics"

	"github.com/rs/zerolog"
)

const genericErrorReply = "Something went wrong while handling your command."

// Compile-time check
var _ IngestUseCase = (*ingestUC)(nil)

// IngestUseCase drives persistence and replies for one inbound event.
// HandleEvent never lets a failure escape in a way that would stop the
// polling loop; the returned error is for the caller to log.
type IngestUseCase interface {
	HandleEvent(ctx context.Context, ev model.InboundEvent) error
}

type ingestUC struct {
	users    UserUseCase
	messages MessageUseCase
	bot      adapter.TelegramBotAdapter
	log      *zerolog.Logger
}

func NewIngestUseCase(users UserUseCase, messages MessageUseCase, bot adapter.TelegramBotAdapter, logger *zerolog.Logger) *ingestUC {
	return &ingestUC{users: users, messages: messages, bot: bot, log: logger}
}

// HandleEvent classifies the event and runs the matching handler. Each event
// is independent: no state is carried between calls, and two events may be
// handled concurrently by separate workers.
func (u *ingestUC) HandleEvent(ctx context.Context, ev model.InboundEvent) error {
	start := time.Now()
	defer func() { metrics.ObserveEvent(time.Since(start)) }()

	route := model.Classify(ev)
	if route.Kind == model.RouteCommand {
		if route.Command != "start" {
			// Command-shaped events are excluded from the message log.
			metrics.IncEvent("command_skipped")
			return nil
		}
		return u.handleStart(ctx, ev)
	}
	return u.handlePlainMessage(ctx, ev)
}

// handleStart is the /start path: upsert the user, record the event as a
// message, send a welcome. Any failure degrades to a generic error reply.
func (u *ingestUC) handleStart(ctx context.Context, ev model.InboundEvent) error {
	log := logging.With(ctx, u.log)

	user, err := u.users.Upsert(ctx, ev.UserID, ev.Username, ev.FirstName)
	if err != nil {
		metrics.IncStorageError("upsert_user")
		return u.replyError(ctx, ev, fmt.Errorf("start: upsert user: %w", err))
	}
	if _, err := u.messages.Record(ctx, user.ID, ev.MessageID, ev.Text); err != nil {
		metrics.IncStorageError("record_message")
		return u.replyError(ctx, ev, fmt.Errorf("start: record message: %w", err))
	}

	metrics.IncEvent("start")
	log.Info().Int64("user_id", user.ID).Msg("user registered")

	welcome := fmt.Sprintf("Hi, %s! 👋\n\nThe bot is connected and your messages are being recorded.", user.DisplayName())
	if err := u.bot.SendMessage(ctx, ev.ChatID, welcome); err != nil {
		return fmt.Errorf("start: send welcome: %w", err)
	}
	return nil
}

// handlePlainMessage records text from an already-known user and echoes it.
// An unknown user gets the echo but no row; a storage failure gets no reply
// at all, which distinguishes it from the command path.
func (u *ingestUC) handlePlainMessage(ctx context.Context, ev model.InboundEvent) error {
	log := logging.With(ctx, u.log)

	user, err := u.users.GetByTelegramID(ctx, ev.UserID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// Not seen via /start yet; nothing is persisted.
		metrics.IncEvent("dropped")
		log.Debug().Msg("message from unknown user, not recorded")
	case err != nil:
		metrics.IncEvent("error")
		return fmt.Errorf("message: find user: %w", err)
	case ev.Text != "":
		if _, err := u.messages.Record(ctx, user.ID, ev.MessageID, ev.Text); err != nil {
			metrics.IncStorageError("record_message")
			metrics.IncEvent("error")
			return fmt.Errorf("message: record: %w", err)
		}
		metrics.IncEvent("message")
	default:
		// Non-text update (sticker, photo, ...): nothing to record.
		metrics.IncEvent("dropped")
	}

	echo := "You wrote: " + ev.Text
	if err := u.bot.SendMessage(ctx, ev.ChatID, echo); err != nil {
		return fmt.Errorf("message: send echo: %w", err)
	}
	return nil
}

// replyError sends the generic failure reply and returns the original error.
// The command path always answers, even when persistence failed.
func (u *ingestUC) replyError(ctx context.Context, ev model.InboundEvent, cause error) error {
	metrics.IncEvent("error")
	if err := u.bot.SendMessage(ctx, ev.ChatID, genericErrorReply); err != nil {
		return errors.Join(cause, fmt.Errorf("send error reply: %w", err))
	}
	return cause
}
