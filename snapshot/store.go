// Package snapshot persists timestamps in a SQLite database.
//
// Rows hold the canonical CBOR payload produced by timext.MarshalTime, so a
// snapshot loads back with the same instant and offset kind that _dump
// would have preserved.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/tock/calendar"
	"github.com/chazu/tock/timext"
	"github.com/chazu/tock/vm"
	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	_ "modernc.org/sqlite"
)

// ErrNotFound indicates the requested snapshot doesn't exist.
var ErrNotFound = errors.New("snapshot not found")

// KeyPrefix starts every generated key.
const KeyPrefix = "time_"

// Options configures Open.
type Options struct {
	// Local resolves payloads saved with the local offset. Defaults to
	// time.Local.
	Local *time.Location

	// Clock stamps saved rows. Defaults to calendar.SystemClock.
	Clock calendar.Clock
}

// Entry is one stored snapshot.
type Entry struct {
	Key     string
	Time    calendar.Time
	SavedAt time.Time
}

// Store handles SQLite storage for timestamps.
type Store struct {
	db    *sql.DB
	path  string
	local *time.Location
	clock calendar.Clock
	log   commonlog.Logger
	mu    sync.Mutex
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshots (
		key      TEXT PRIMARY KEY,
		payload  BLOB NOT NULL,
		saved_at INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	s := &Store{
		db:    db,
		path:  path,
		local: opts.Local,
		clock: opts.Clock,
		log:   commonlog.GetLogger("tock.snapshot"),
	}
	if s.local == nil {
		s.local = time.Local
	}
	if s.clock == nil {
		s.clock = calendar.SystemClock{}
	}
	s.log.Debugf("opened %s", path)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Save stores t under key and returns the key. An empty key is replaced by
// a generated one. Saving under an existing key overwrites it.
func (s *Store) Save(ctx context.Context, key string, t calendar.Time) (string, error) {
	if key == "" {
		key = KeyPrefix + uuid.New().String()
	}
	data, err := timext.MarshalTime(t)
	if err != nil {
		return "", fmt.Errorf("encoding snapshot %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO snapshots (key, payload, saved_at) VALUES (?, ?, ?)",
		key, data, s.clock.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("saving snapshot %s: %w", key, err)
	}
	s.log.Debugf("saved %s", key)
	return key, nil
}

// Load retrieves the timestamp stored under key.
func (s *Store) Load(ctx context.Context, key string) (calendar.Time, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM snapshots WHERE key = ?", key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calendar.Time{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return calendar.Time{}, fmt.Errorf("querying snapshot %s: %w", key, err)
	}

	t, err := timext.UnmarshalTime(data, s.local)
	if err != nil {
		return calendar.Time{}, fmt.Errorf("decoding snapshot %s: %w", key, err)
	}
	return t, nil
}

// List returns every snapshot, oldest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, payload, saved_at FROM snapshots ORDER BY saved_at, key")
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			key     string
			data    []byte
			savedAt int64
		)
		if err := rows.Scan(&key, &data, &savedAt); err != nil {
			return nil, fmt.Errorf("listing snapshots: %w", err)
		}
		t, err := timext.UnmarshalTime(data, s.local)
		if err != nil {
			s.log.Warningf("skipping undecodable snapshot %s: %s", key, err)
			continue
		}
		entries = append(entries, Entry{Key: key, Time: t, SavedAt: time.Unix(0, savedAt)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return entries, nil
}

// Delete removes the snapshot stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

// SaveValue stores a VM Time.
func (s *Store) SaveValue(ctx context.Context, b *timext.Binding, key string, v vm.Value) (string, error) {
	t, err := b.Unbox(v)
	if err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}
	return s.Save(ctx, key, t)
}

// LoadValue loads key and boxes it as a new VM Time.
func (s *Store) LoadValue(ctx context.Context, b *timext.Binding, key string) (vm.Value, error) {
	t, err := s.Load(ctx, key)
	if err != nil {
		return vm.Nil, err
	}
	return b.Box(t), nil
}
