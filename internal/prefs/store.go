// Package prefs persists client-local preferences: the theme key and the
// last login email. It is fully independent of the financial core; a
// missing or broken store never blocks a session.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	KeyTheme     = "theme"
	KeyLastEmail = "last_email"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Store is a sqlite-backed key/value preference store.
type Store struct {
	db           *sql.DB
	defaultTheme string
}

// Open opens (creating if needed) the preference database at the given
// path and runs migrations.
func Open(dbPath, defaultTheme string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open prefs database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping prefs database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate prefs database: %w", err)
	}

	return &Store{db: db, defaultTheme: defaultTheme}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the stored value for key, or "" when unset.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, nil
}

// Set stores a value for key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// Theme returns the stored theme, falling back to the configured default.
func (s *Store) Theme(ctx context.Context) string {
	theme, err := s.Get(ctx, KeyTheme)
	if err != nil || (theme != ThemeLight && theme != ThemeDark) {
		return s.defaultTheme
	}
	return theme
}

// ToggleTheme flips light/dark, persists, and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if s.Theme(ctx) == ThemeDark {
		next = ThemeLight
	}
	if err := s.Set(ctx, KeyTheme, next); err != nil {
		return "", err
	}
	return next, nil
}

// LastEmail returns the most recently used login email, or "".
func (s *Store) LastEmail(ctx context.Context) string {
	email, _ := s.Get(ctx, KeyLastEmail)
	return email
}

// RememberEmail stores the email for the next login prompt.
func (s *Store) RememberEmail(ctx context.Context, email string) error {
	return s.Set(ctx, KeyLastEmail, email)
}
