package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-chat-logger/internal/config"
	"telegram-chat-logger/internal/domain/model"
	"telegram-chat-logger/internal/domain/ports/adapter"
	"telegram-chat-logger/internal/infra/logging"
	red "telegram-chat-logger/internal/infra/redis"
	"telegram-chat-logger/internal/usecase"
)

// Bot polls Telegram updates and hands each one to the ingest use case
// through a bounded worker pool. It also implements the outbound
// TelegramBotAdapter port used for replies.
type Bot struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	ingest      usecase.IngestUseCase
	rateLimiter *red.RateLimiter
	log         *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

var _ adapter.TelegramBotAdapter = (*Bot)(nil)

func NewBot(cfg *config.BotConfig, logger *zerolog.Logger, rateLimiter *red.RateLimiter) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if cfg.Token == "" {
		return nil, errors.New("bot token is empty")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	return &Bot{
		bot:           bot,
		cfg:           cfg,
		rateLimiter:   rateLimiter,
		log:           logger,
		updateWorkers: workers,
	}, nil
}

// SetIngest wires the dispatcher after construction; the ingest use case
// needs the bot as its reply port, so the two are tied together in main.
func (b *Bot) SetIngest(ingest usecase.IngestUseCase) { b.ingest = ingest }

func (b *Bot) StartPolling(ctx context.Context) error {
	if b.ingest == nil {
		return errors.New("ingest use case not set")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	b.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < b.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := b.handleUpdate(ctx, up); err != nil {
						b.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	b.log.Info().Str("bot", b.bot.Self.UserName).Int("workers", b.updateWorkers).Msg("telegram polling started")

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (b *Bot) StopPolling() {
	if b.cancelPolling != nil {
		b.cancelPolling()
	}
}

// SendMessage implements the adapter port.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.bot.Send(msg)
	return err
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	ev := eventFromMessage(update.Message)

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, ev.UserID)

	if b.rateLimiter != nil {
		allowed, err := b.rateLimiter.Allow(ctx, red.UserKey(ev.UserID), 20, time.Minute)
		if err != nil {
			b.log.Warn().Err(err).Msg("rate limit check failed")
		} else if !allowed {
			return b.SendMessage(ctx, ev.ChatID, "Rate limit exceeded. Please try again later.")
		}
	}

	return b.ingest.HandleEvent(ctx, ev)
}

func eventFromMessage(msg *tgbotapi.Message) model.InboundEvent {
	return model.InboundEvent{
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		MessageID: int64(msg.MessageID),
		Text:      msg.Text,
	}
}
