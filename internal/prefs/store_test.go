package prefs

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "prefs.db"), ThemeLight)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	t.Run("unset key reads as empty", func(t *testing.T) {
		value, err := store.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if value != "" {
			t.Fatalf("value = %q", value)
		}
	})

	t.Run("set then get roundtrips", func(t *testing.T) {
		if err := store.Set(ctx, "greeting", "hello"); err != nil {
			t.Fatalf("set: %v", err)
		}
		value, err := store.Get(ctx, "greeting")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if value != "hello" {
			t.Fatalf("value = %q", value)
		}
	})

	t.Run("set replaces the previous value", func(t *testing.T) {
		if err := store.Set(ctx, "greeting", "ciao"); err != nil {
			t.Fatalf("set: %v", err)
		}
		value, err := store.Get(ctx, "greeting")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if value != "ciao" {
			t.Fatalf("value = %q", value)
		}
	})
}

func TestTheme(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to the default", func(t *testing.T) {
		store := openTestStore(t)
		if theme := store.Theme(ctx); theme != ThemeLight {
			t.Fatalf("theme = %q", theme)
		}
	})

	t.Run("unknown stored value falls back to the default", func(t *testing.T) {
		store := openTestStore(t)
		if err := store.Set(ctx, KeyTheme, "sepia"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if theme := store.Theme(ctx); theme != ThemeLight {
			t.Fatalf("theme = %q", theme)
		}
	})

	t.Run("toggle flips and persists", func(t *testing.T) {
		store := openTestStore(t)
		next, err := store.ToggleTheme(ctx)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if next != ThemeDark {
			t.Fatalf("next = %q", next)
		}
		if theme := store.Theme(ctx); theme != ThemeDark {
			t.Fatalf("theme = %q", theme)
		}
		next, err = store.ToggleTheme(ctx)
		if err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if next != ThemeLight {
			t.Fatalf("next = %q", next)
		}
	})
}

func TestLastEmail(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if email := store.LastEmail(ctx); email != "" {
		t.Fatalf("email = %q", email)
	}
	if err := store.RememberEmail(ctx, "ada@example.com"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if email := store.LastEmail(ctx); email != "ada@example.com" {
		t.Fatalf("email = %q", email)
	}
}
