package adapter

import "context"

// TelegramBotAdapter is the outbound side of the transport: sending a plain
// text reply to a chat. The inbound side (polling) lives in the infra layer.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}
