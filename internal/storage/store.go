// Package storage persists user preferences, encrypted service
// credentials and a capture history in a local SQLite database.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/raine/buddy-vision/internal/llm"
)

const defaultLanguage = "en-US"

// CaptureRecord is one entry in the capture history.
type CaptureRecord struct {
	ID          int64
	Description string
	Language    string
	CreatedAt   time.Time
}

// Store defines the persistence interface for preferences, credentials
// and capture history.
type Store interface {
	Language() (string, error)
	SetLanguage(code string) error

	Settings() (llm.Settings, error)
	SaveSettings(settings llm.Settings) error

	Partner() (string, error)
	SetPartner(partner string) error

	Credential(name string) (string, error)
	SetCredential(name, value string) error

	RecordCapture(description, language string) error
	RecentCaptures(limit int) ([]CaptureRecord, error)

	Close() error
}

// SQLiteStore implements Store using SQLite with encrypted credentials.
type SQLiteStore struct {
	db            *sql.DB
	encryptionKey []byte
	mu            sync.RWMutex
}

// NewSQLiteStore opens (and if needed creates) the database at dbPath.
// The encryptionKey is used to encrypt credential values at rest.
func NewSQLiteStore(dbPath string, encryptionKey []byte) (*SQLiteStore, error) {
	// WAL mode and a busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set file permissions (only works on creation)
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		// Ignore error if file doesn't exist yet
	}

	store := &SQLiteStore{
		db:            db,
		encryptionKey: encryptionKey,
	}

	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	preferencesQuery := `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(preferencesQuery); err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}

	credentialsQuery := `
	CREATE TABLE IF NOT EXISTS credentials (
		name TEXT PRIMARY KEY,
		encrypted_value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(credentialsQuery); err != nil {
		return fmt.Errorf("failed to create credentials table: %w", err)
	}

	capturesQuery := `
	CREATE TABLE IF NOT EXISTS captures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		language TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(capturesQuery); err != nil {
		return fmt.Errorf("failed to create captures table: %w", err)
	}

	return nil
}

func (s *SQLiteStore) preference(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query preference %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) setPreference(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// Language returns the persisted language code, or en-US when unset.
func (s *SQLiteStore) Language() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, err := s.preference("language")
	if err != nil {
		return "", err
	}
	if code == "" {
		return defaultLanguage, nil
	}
	return code, nil
}

// SetLanguage persists the language code.
func (s *SQLiteStore) SetLanguage(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPreference("language", code)
}

// Settings returns the persisted settings, normalized. Missing or
// unreadable settings fall back to defaults.
func (s *SQLiteStore) Settings() (llm.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := s.preference("settings")
	if err != nil {
		return llm.Settings{}, err
	}
	if raw == "" {
		return llm.DefaultSettings(), nil
	}

	var settings llm.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return llm.DefaultSettings(), nil
	}
	return settings.Normalize(), nil
}

// SaveSettings persists the settings as JSON, replacing any previous
// value.
func (s *SQLiteStore) SaveSettings(settings llm.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(settings.Normalize())
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return s.setPreference("settings", string(raw))
}

// Partner returns the persisted partner referral code, if any.
func (s *SQLiteStore) Partner() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preference("partner")
}

// SetPartner persists the partner referral code.
func (s *SQLiteStore) SetPartner(partner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setPreference("partner", partner)
}

// Credential returns the decrypted credential value. Returns empty string
// when the credential doesn't exist.
func (s *SQLiteStore) Credential(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var encrypted string
	err := s.db.QueryRow("SELECT encrypted_value FROM credentials WHERE name = ?", name).Scan(&encrypted)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query credential: %w", err)
	}

	plaintext, err := Decrypt(encrypted, s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential %s: %w", name, err)
	}
	return string(plaintext), nil
}

// SetCredential stores the credential value encrypted at rest.
func (s *SQLiteStore) SetCredential(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := Encrypt([]byte(value), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt credential: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO credentials (name, encrypted_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			encrypted_value = excluded.encrypted_value,
			updated_at = excluded.updated_at
	`, name, encrypted)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// RecordCapture appends a successful capture to the history.
func (s *SQLiteStore) RecordCapture(description, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO captures (description, language, created_at) VALUES (?, ?, ?)",
		description, language, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record capture: %w", err)
	}
	return nil
}

// RecentCaptures returns up to limit captures, newest first.
func (s *SQLiteStore) RecentCaptures(limit int) ([]CaptureRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, description, language, created_at FROM captures ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer rows.Close()

	var records []CaptureRecord
	for rows.Next() {
		var r CaptureRecord
		if err := rows.Scan(&r.ID, &r.Description, &r.Language, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan capture row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
