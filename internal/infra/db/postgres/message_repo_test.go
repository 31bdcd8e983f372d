//go:build integration

package postgres

import (
	"context"
	"testing"
)

func TestMessageRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	users := NewUserRepo(testPool)
	messages := NewMessageRepo(testPool)
	ctx := context.Background()

	t.Run("insert is append-only, duplicates included", func(t *testing.T) {
		cleanup(t)

		u, err := users.Upsert(ctx, 555, "sender", "S")
		if err != nil {
			t.Fatalf("upsert user failed: %v", err)
		}

		// Same transport message id three times: redelivery must append,
		// never dedupe or overwrite.
		for i := 0; i < 3; i++ {
			if _, err := messages.Insert(ctx, u.ID, 9001, "hello"); err != nil {
				t.Fatalf("insert %d failed: %v", i, err)
			}
		}

		count, err := messages.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 3 {
			t.Errorf("expected 3 rows after 3 inserts, got %d", count)
		}
	})

	t.Run("list joins owning user and honors limit", func(t *testing.T) {
		cleanup(t)

		a, _ := users.Upsert(ctx, 100, "alice", "Alice")
		b, _ := users.Upsert(ctx, 200, "bob", "Bob")

		texts := []struct {
			userID int64
			text   string
		}{
			{a.ID, "one"}, {b.ID, "two"}, {a.ID, "three"}, {b.ID, "four"}, {a.ID, "five"},
		}
		for i, m := range texts {
			if _, err := messages.Insert(ctx, m.userID, int64(i+1), m.text); err != nil {
				t.Fatalf("insert %q failed: %v", m.text, err)
			}
		}

		got, err := messages.ListRecent(ctx, 2)
		if err != nil {
			t.Fatalf("ListRecent failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(got))
		}
		if got[0].Text != "five" || got[1].Text != "four" {
			t.Errorf("expected newest first, got %q then %q", got[0].Text, got[1].Text)
		}
		if got[0].TelegramID != 100 || got[0].Username != "alice" || got[0].FirstName != "Alice" {
			t.Errorf("expected owning user fields, got %d/%q/%q",
				got[0].TelegramID, got[0].Username, got[0].FirstName)
		}
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		cleanup(t)

		u, _ := users.Upsert(ctx, 300, "", "")
		if _, err := messages.Insert(ctx, u.ID, 1, "only"); err != nil {
			t.Fatalf("insert failed: %v", err)
		}

		got, err := messages.ListRecent(ctx, -5)
		if err != nil {
			t.Fatalf("ListRecent with invalid limit failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected the single row, got %d", len(got))
		}
	})

	t.Run("empty text is stored as null and read back empty", func(t *testing.T) {
		cleanup(t)

		u, _ := users.Upsert(ctx, 400, "", "")
		if _, err := messages.Insert(ctx, u.ID, 7, ""); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		got, err := messages.ListRecent(ctx, 1)
		if err != nil {
			t.Fatalf("ListRecent failed: %v", err)
		}
		if len(got) != 1 || got[0].Text != "" {
			t.Fatalf("expected one row with empty text, got %+v", got)
		}
	})
}
