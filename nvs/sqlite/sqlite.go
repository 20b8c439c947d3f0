package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/mwantia/cliapi/nvs"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps the partition in a single SQLite database file:
//
// nvs_meta holds the format version the file was written with.
// nvs_entries holds one row per namespace and key.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB

	path       string
	maxEntries int
	opened     bool
}

// New creates a store for the database at path. The path can be ":memory:".
func New(path string, maxEntries int) *SQLiteStore {
	if maxEntries <= 0 {
		maxEntries = nvs.DefaultMaxEntries
	}

	return &SQLiteStore{
		path:       path,
		maxEntries: maxEntries,
	}
}

func (*SQLiteStore) Name() string {
	return "sqlite"
}

func (ss *SQLiteStore) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := ss.connect(); err != nil {
		return err
	}
	if err := ss.initSchema(ctx); err != nil {
		return err
	}

	var version int
	err := ss.db.QueryRowContext(ctx, "SELECT value FROM nvs_meta WHERE key = 'format_version'").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := ss.db.ExecContext(ctx, "INSERT INTO nvs_meta (key, value) VALUES ('format_version', ?)", nvs.FormatVersion); err != nil {
			return fmt.Errorf("failed to write format version: %w", err)
		}
		version = nvs.FormatVersion
	} else if err != nil {
		return fmt.Errorf("failed to read format version: %w", err)
	}

	if version > nvs.FormatVersion {
		return fmt.Errorf("%w: version %d", nvs.ErrNewVersionFound, version)
	}

	count, err := ss.count(ctx)
	if err != nil {
		return err
	}
	if count >= ss.maxEntries {
		return nvs.ErrNoFreePages
	}

	ss.opened = true
	return nil
}

func (ss *SQLiteStore) Close(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.opened = false
	if ss.db == nil {
		return nil
	}

	err := ss.db.Close()
	ss.db = nil
	return err
}

// Erase drops both tables; the next Open recreates them.
func (ss *SQLiteStore) Erase(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := ss.connect(); err != nil {
		return err
	}

	for _, stmt := range []string{"DROP TABLE IF EXISTS nvs_entries", "DROP TABLE IF EXISTS nvs_meta"} {
		if _, err := ss.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to erase partition: %w", err)
		}
	}

	ss.opened = false
	return nil
}

func (ss *SQLiteStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return nil, err
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if !ss.opened {
		return nil, nvs.ErrNotOpen
	}

	var value []byte
	err := ss.db.QueryRowContext(ctx,
		"SELECT value FROM nvs_entries WHERE namespace = ? AND key = ?",
		namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", nvs.ErrNotFound, namespace, key)
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (ss *SQLiteStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.opened {
		return nvs.ErrNotOpen
	}

	tx, err := ss.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM nvs_entries WHERE namespace = ? AND key = ?",
		namespace, key).Scan(&exists); err != nil {
		return err
	}

	if exists == 0 {
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM nvs_entries").Scan(&count); err != nil {
			return err
		}
		if count >= ss.maxEntries {
			return nvs.ErrNoFreePages
		}
	}

	if value == nil {
		value = []byte{}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO nvs_entries (namespace, key, value) VALUES (?, ?, ?) ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value",
		namespace, key, value); err != nil {
		return err
	}

	return tx.Commit()
}

func (ss *SQLiteStore) Delete(ctx context.Context, namespace, key string) error {
	if err := nvs.ValidateEntry(namespace, key); err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.opened {
		return nvs.ErrNotOpen
	}

	result, err := ss.db.ExecContext(ctx, "DELETE FROM nvs_entries WHERE namespace = ? AND key = ?", namespace, key)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s/%s", nvs.ErrNotFound, namespace, key)
	}
	return nil
}

func (ss *SQLiteStore) Keys(ctx context.Context, namespace string) ([]string, error) {
	if err := nvs.ValidateName(namespace); err != nil {
		return nil, err
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if !ss.opened {
		return nil, nvs.ErrNotOpen
	}

	rows, err := ss.db.QueryContext(ctx, "SELECT key FROM nvs_entries WHERE namespace = ? ORDER BY key", namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// SetFormatVersion overwrites the stored format marker.
func (ss *SQLiteStore) SetFormatVersion(ctx context.Context, version int) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := ss.connect(); err != nil {
		return err
	}
	if err := ss.initSchema(ctx); err != nil {
		return err
	}

	_, err := ss.db.ExecContext(ctx,
		"INSERT INTO nvs_meta (key, value) VALUES ('format_version', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		version)
	return err
}

func (ss *SQLiteStore) connect() error {
	if ss.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", ss.path)
	if err != nil {
		return err
	}

	// A single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return err
	}

	ss.db = db
	return nil
}

func (ss *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS nvs_meta (
		key TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS nvs_entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	`

	if _, err := ss.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

func (ss *SQLiteStore) count(ctx context.Context) (int, error) {
	var count int
	if err := ss.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nvs_entries").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
