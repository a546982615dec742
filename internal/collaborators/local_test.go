package collaborators

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLocalEarningsStoreApplyUpdatesIsAdditive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earnings.json")
	store, err := NewLocalEarningsStore(path)
	if err != nil {
		t.Fatalf("NewLocalEarningsStore: %v", err)
	}
	ctx := context.Background()

	update := EarningsUpdate{Email: "Player@Example.com", Hands: 1, ChipsDelta: 50}
	if err := store.ApplyUpdates(ctx, []EarningsUpdate{update}); err != nil {
		t.Fatalf("ApplyUpdates: %v", err)
	}
	if err := store.ApplyUpdates(ctx, []EarningsUpdate{update}); err != nil {
		t.Fatalf("ApplyUpdates (second): %v", err)
	}

	rec, err := store.Get(ctx, "player@example.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Hands != 2 || rec.ChipsDelta != 100 {
		t.Fatalf("expected accumulated totals, got %+v", rec)
	}
}

func TestLocalEarningsStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earnings.json")
	ctx := context.Background()

	store, err := NewLocalEarningsStore(path)
	if err != nil {
		t.Fatalf("NewLocalEarningsStore: %v", err)
	}
	if err := store.ApplyUpdates(ctx, []EarningsUpdate{{Email: "a@b.com", Hands: 3, ChipsDelta: -20}}); err != nil {
		t.Fatalf("ApplyUpdates: %v", err)
	}

	reopened, err := NewLocalEarningsStore(path)
	if err != nil {
		t.Fatalf("reopen NewLocalEarningsStore: %v", err)
	}
	rec, err := reopened.Get(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Hands != 3 || rec.ChipsDelta != -20 {
		t.Fatalf("expected persisted totals, got %+v", rec)
	}
}

func TestLocalAllowListNormalizesEmails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allow.json")
	if err := ensureJSONFile(path, []string{" Alice@Example.com ", "bob@example.com"}); err != nil {
		t.Fatalf("ensureJSONFile: %v", err)
	}

	allowList, err := NewLocalAllowList(path)
	if err != nil {
		t.Fatalf("NewLocalAllowList: %v", err)
	}
	emails, err := allowList.GetAllowedEmails(context.Background())
	if err != nil {
		t.Fatalf("GetAllowedEmails: %v", err)
	}
	if _, ok := emails["alice@example.com"]; !ok {
		t.Fatalf("expected normalized alice@example.com in %v", emails)
	}
	if _, ok := emails["bob@example.com"]; !ok {
		t.Fatalf("expected bob@example.com in %v", emails)
	}
	if len(emails) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(emails))
	}
}

func TestIs6992(t *testing.T) {
	cases := []struct {
		a, b int
		want bool
	}{
		{6, 9, true},
		{9, 6, true},
		{9, 2, true},
		{2, 9, true},
		{6, 2, false},
		{14, 13, false},
	}
	for _, c := range cases {
		if got := Is6992(c.a, c.b); got != c.want {
			t.Errorf("Is6992(%d, %d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}
