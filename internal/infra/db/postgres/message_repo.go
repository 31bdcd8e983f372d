package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-chat-logger/internal/domain/model"
	"telegram-chat-logger/internal/domain/ports/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Insert appends one message row. There is no conflict target: redelivered
// updates produce duplicate rows under the accepted at-least-once semantics.
func (r *MessageRepo) Insert(ctx context.Context, userID, telegramMessageID int64, text string) (*model.Message, error) {
	const q = `
INSERT INTO messages (user_id, telegram_message_id, text)
VALUES ($1, $2, NULLIF($3,''))
RETURNING id, created_at;`
	m := &model.Message{
		UserID:            userID,
		TelegramMessageID: telegramMessageID,
		Text:              text,
	}
	if err := r.pool.QueryRow(ctx, q, userID, telegramMessageID, text).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

func (r *MessageRepo) ListRecent(ctx context.Context, limit int) ([]*model.MessageWithUser, error) {
	const q = `
SELECT m.id, m.user_id, m.telegram_message_id, m.text, m.created_at,
       u.telegram_id, u.username, u.first_name
  FROM messages m
  JOIN users u ON m.user_id = u.id
 ORDER BY m.created_at DESC, m.id DESC
 LIMIT $1;`
	rows, err := r.pool.Query(ctx, q, model.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []*model.MessageWithUser
	for rows.Next() {
		var (
			m         model.MessageWithUser
			tgMsgID   sql.NullInt64
			text      sql.NullString
			username  sql.NullString
			firstName sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.UserID, &tgMsgID, &text, &m.CreatedAt, &m.TelegramID, &username, &firstName); err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		m.TelegramMessageID = tgMsgID.Int64
		m.Text = text.String
		m.Username = username.String
		m.FirstName = firstName.String
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

func (r *MessageRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM messages;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}
