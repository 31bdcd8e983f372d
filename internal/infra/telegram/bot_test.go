package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestEventFromMessage(t *testing.T) {
	msg := &tgbotapi.Message{
		MessageID: 77,
		From:      &tgbotapi.User{ID: 123, UserName: "ada", FirstName: "Ada"},
		Chat:      &tgbotapi.Chat{ID: 456},
		Text:      "/start",
	}

	ev := eventFromMessage(msg)
	if ev.ChatID != 456 || ev.UserID != 123 {
		t.Errorf("unexpected ids: chat=%d user=%d", ev.ChatID, ev.UserID)
	}
	if ev.Username != "ada" || ev.FirstName != "Ada" {
		t.Errorf("unexpected names: %q/%q", ev.Username, ev.FirstName)
	}
	if ev.MessageID != 77 || ev.Text != "/start" {
		t.Errorf("unexpected message fields: id=%d text=%q", ev.MessageID, ev.Text)
	}
}
