// Package storage provides the durable key-value store backing the ledger.
// Each entity type lives in one logical collection; a collection is read and
// replaced as a whole (get-all/replace-all semantics).
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fintrack/fintrack/internal/common"
	log "github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

// Store persists whole collections of records. Records pass through JSON, so
// time.Time fields are serialized as ISO-8601 strings and reconstructed on
// load. Load on a missing or corrupt collection resolves to "no data" rather
// than failing; Save failures are hard failures.
type Store interface {
	Load(ctx context.Context, collection string, dest any) error
	Save(ctx context.Context, collection string, records any) error
}

// SQLiteStore keeps one row per collection in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("could not create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the named collection into dest. A missing collection or a
// corrupt payload leaves dest empty: corruption is logged and treated as
// "no data", never as a fatal error.
func (s *SQLiteStore) Load(ctx context.Context, collection string, dest any) error {
	var data string
	row := s.db.QueryRowContext(ctx, "SELECT data FROM collections WHERE name = ?", collection)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		err := fmt.Errorf("could not read collection %s: %w", collection, err)
		log.Error(err)
		return err
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		log.Warnf("collection %s is corrupt, treating as empty: %v", collection, err)
		return nil
	}
	return nil
}

// Save replaces the whole named collection with records in a single upsert.
func (s *SQLiteStore) Save(ctx context.Context, collection string, records any) error {
	data, err := json.Marshal(records)
	if err != nil {
		err := common.NewPersistenceError(collection, err)
		log.Error(err)
		return err
	}

	query := `INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.db.ExecContext(ctx, query, collection, string(data)); err != nil {
		err := common.NewPersistenceError(collection, err)
		log.Error(err)
		return err
	}
	return nil
}
