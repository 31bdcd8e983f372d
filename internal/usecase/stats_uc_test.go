//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"testing"

	"telegram-chat-logger/internal/usecase"
)

func TestStatsUseCase_Totals(t *testing.T) {
	ctx := context.Background()

	t.Run("returns both counts", func(t *testing.T) {
		users := NewMockUserRepo()
		users.CountFunc = func(ctx context.Context) (int, error) { return 3, nil }
		messages := NewMockMessageRepo()
		messages.CountFunc = func(ctx context.Context) (int, error) { return 5, nil }

		uc := usecase.NewStatsUseCase(users, messages, newTestLogger())
		u, m, err := uc.Totals(ctx)
		if err != nil {
			t.Fatalf("Totals failed: %v", err)
		}
		if u != 3 || m != 5 {
			t.Errorf("Totals() = (%d, %d), want (3, 5)", u, m)
		}
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		users := NewMockUserRepo()
		boom := errors.New("count failed")
		users.CountFunc = func(ctx context.Context) (int, error) { return 0, boom }

		uc := usecase.NewStatsUseCase(users, NewMockMessageRepo(), newTestLogger())
		if _, _, err := uc.Totals(ctx); !errors.Is(err, boom) {
			t.Errorf("expected %v, got %v", boom, err)
		}
	})
}
