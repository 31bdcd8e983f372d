package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-chat-logger/internal/domain"
	"telegram-chat-logger/internal/domain/model"
	"telegram-chat-logger/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Upsert is a single conditional-insert statement keyed on telegram_id, so
// concurrent events for the same user cannot race a read-then-write.
// created_at is set by the insert default and never updated.
func (r *UserRepo) Upsert(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	const q = `
INSERT INTO users (telegram_id, username, first_name)
VALUES ($1, NULLIF($2,''), NULLIF($3,''))
ON CONFLICT (telegram_id) DO UPDATE SET
  username = EXCLUDED.username,
  first_name = EXCLUDED.first_name
RETURNING id, telegram_id, username, first_name, created_at;`
	u, err := scanUser(r.pool.QueryRow(ctx, q, telegramID, username, firstName))
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func (r *UserRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	const q = `
SELECT id, telegram_id, username, first_name, created_at
  FROM users WHERE telegram_id = $1;`
	u, err := scanUser(r.pool.QueryRow(ctx, q, telegramID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by telegram id: %w", err)
	}
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	const q = `
SELECT id, telegram_id, username, first_name, created_at
  FROM users ORDER BY created_at DESC, id DESC;`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u         model.User
		username  sql.NullString
		firstName sql.NullString
	)
	if err := row.Scan(&u.ID, &u.TelegramID, &username, &firstName, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Username = username.String
	u.FirstName = firstName.String
	return &u, nil
}
