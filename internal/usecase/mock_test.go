//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-chat-logger/internal/domain"
	"telegram-chat-logger/internal/domain/model"
	"telegram-chat-logger/internal/domain/ports/adapter"
	"telegram-chat-logger/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// ---- Mock TelegramBotAdapter ----

type sentMessage struct {
	ChatID int64
	Text   string
}

type MockTelegramBot struct {
	mu   sync.Mutex
	Sent []sentMessage

	SendMessageFunc func(ctx context.Context, chatID int64, text string) error
}

var _ adapter.TelegramBotAdapter = (*MockTelegramBot)(nil)

func (m *MockTelegramBot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, chatID, text)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (m *MockTelegramBot) SentMessages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMessage, len(m.Sent))
	copy(out, m.Sent)
	return out
}

// ---- Mock UserRepository ----

type MockUserRepo struct {
	mu     sync.Mutex
	byTgID map[int64]*model.User
	nextID int64

	UpsertFunc           func(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error)
	FindByTelegramIDFunc func(ctx context.Context, telegramID int64) (*model.User, error)
	ListFunc             func(ctx context.Context) ([]*model.User, error)
	CountFunc            func(ctx context.Context) (int, error)
}

var _ repository.UserRepository = (*MockUserRepo)(nil)

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{byTgID: map[int64]*model.User{}, nextID: 1}
}

func (m *MockUserRepo) Upsert(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, telegramID, username, firstName)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byTgID[telegramID]; ok {
		u.Username = username
		u.FirstName = firstName
		cp := *u
		return &cp, nil
	}
	u := &model.User{
		ID:         m.nextID,
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		CreatedAt:  time.Now(),
	}
	m.nextID++
	m.byTgID[telegramID] = u
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	if m.FindByTelegramIDFunc != nil {
		return m.FindByTelegramIDFunc(ctx, telegramID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byTgID[telegramID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.byTgID))
	for _, u := range m.byTgID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockUserRepo) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byTgID), nil
}

// ---- Mock MessageRepository ----

type MockMessageRepo struct {
	mu       sync.Mutex
	messages []*model.Message
	nextID   int64

	InsertFunc     func(ctx context.Context, userID, telegramMessageID int64, text string) (*model.Message, error)
	ListRecentFunc func(ctx context.Context, limit int) ([]*model.MessageWithUser, error)
	CountFunc      func(ctx context.Context) (int, error)
}

var _ repository.MessageRepository = (*MockMessageRepo)(nil)

func NewMockMessageRepo() *MockMessageRepo {
	return &MockMessageRepo{nextID: 1}
}

func (m *MockMessageRepo) Insert(ctx context.Context, userID, telegramMessageID int64, text string) (*model.Message, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, userID, telegramMessageID, text)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := &model.Message{
		ID:                m.nextID,
		UserID:            userID,
		TelegramMessageID: telegramMessageID,
		Text:              text,
		CreatedAt:         time.Now(),
	}
	m.nextID++
	m.messages = append(m.messages, msg)
	cp := *msg
	return &cp, nil
}

func (m *MockMessageRepo) ListRecent(ctx context.Context, limit int) ([]*model.MessageWithUser, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	limit = model.NormalizeLimit(limit)
	out := []*model.MessageWithUser{}
	for i := len(m.messages) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, &model.MessageWithUser{Message: *m.messages[i]})
	}
	return out, nil
}

func (m *MockMessageRepo) Count(ctx context.Context) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages), nil
}

func (m *MockMessageRepo) All() []*model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Message, len(m.messages))
	copy(out, m.messages)
	return out
}
