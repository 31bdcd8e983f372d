package model

import "time"

// User is a domain entity representing a Telegram user seen by the bot.
// ID is the internal database identity; TelegramID is the transport-assigned
// identifier and is unique per user.
type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"first_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) IsZero() bool { return u == nil || u.ID == 0 }

// DisplayName returns the best available human-readable name.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "there"
}
