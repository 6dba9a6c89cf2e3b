package translate

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTranslationsTable = `
CREATE TABLE IF NOT EXISTS translations (
	word        TEXT NOT NULL,
	locale      TEXT NOT NULL,
	translation TEXT NOT NULL,
	PRIMARY KEY (word, locale)
)`

// Store persists resolved translations in a SQLite database so
// repeated runs over overlapping word lists skip the network.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open translation store: %w", err)
	}

	if _, err := db.Exec(createTranslationsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize translation store: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the stored translation for a word in a locale, if
// present.
func (s *Store) Get(word, locale string) (string, bool) {
	var translation string
	err := s.db.QueryRow(
		"SELECT translation FROM translations WHERE word = ? AND locale = ?",
		word, locale,
	).Scan(&translation)
	if err != nil {
		return "", false
	}
	return translation, true
}

// Put stores a translation, replacing any previous value.
func (s *Store) Put(word, locale, translation string) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO translations (word, locale, translation) VALUES (?, ?, ?)",
		word, locale, translation,
	)
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}
	return nil
}

// Count returns the number of stored translations.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM translations").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
