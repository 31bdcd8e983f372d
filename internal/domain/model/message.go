package model

import "time"

// Message is one recorded inbound chat message. Rows are append-only: the
// transport may redeliver an update, in which case a second row with the
// same TelegramMessageID is accepted.
type Message struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	TelegramMessageID int64     `json:"telegram_message_id"`
	Text              string    `json:"text,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// MessageWithUser is the read-side join of a message with its owning user,
// as served by the messages listing endpoint.
type MessageWithUser struct {
	Message
	TelegramID int64  `json:"telegram_id"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
}

const (
	// DefaultMessageLimit applies when a caller supplies no limit or an
	// invalid one.
	DefaultMessageLimit = 50
	// MaxMessageLimit caps a single listing query.
	MaxMessageLimit = 500
)

// NormalizeLimit bounds a requested message listing limit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultMessageLimit
	}
	if limit > MaxMessageLimit {
		return MaxMessageLimit
	}
	return limit
}
