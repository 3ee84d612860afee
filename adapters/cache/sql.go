package cache

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"smartsheetsvc/internal/errors"
	"smartsheetsvc/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLStore keeps cached payloads in the sheet_cache table so that several
// service replicas can share one cache.
type SQLStore struct {
	db  *sqlx.DB
	now func() time.Time
}

type cacheRow struct {
	Payload   string `db:"payload"`
	ExpiresAt int64  `db:"expires_at"`
}

// OpenSQLStore connects using a postgres:// or sqlite://path URL and runs the
// cache migration.
func OpenSQLStore(ctx context.Context, databaseURL string) (*SQLStore, error) {
	driver, dsn, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.CacheError("connect", err)
	}
	if driver == "sqlite" {
		// one writer at a time avoids SQLITE_BUSY under concurrent Set calls
		db.SetMaxOpenConns(1)
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.CacheError("migrate", err)
	}

	return NewSQLStore(db), nil
}

// NewSQLStore wraps an already migrated database.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func parseDatabaseURL(databaseURL string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres", databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return "", "", errors.ConfigInvalid("sqlite cache URL needs a file path")
		}
		return "sqlite", path, nil
	default:
		return "", "", errors.ConfigInvalid(fmt.Sprintf("unsupported cache database URL %q", databaseURL))
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row cacheRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`
		SELECT payload, expires_at
		FROM sheet_cache
		WHERE cache_key = ?
	`), key)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.CacheError("get", err)
	}
	if row.ExpiresAt <= s.now().UnixMilli() {
		return nil, false, nil
	}
	return []byte(row.Payload), true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := s.now().Add(ttl).UnixMilli()
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO sheet_cache (cache_key, payload, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE
		SET payload = excluded.payload, expires_at = excluded.expires_at
	`), key, string(value), expiresAt)
	if err != nil {
		return errors.CacheError("set", err)
	}
	return nil
}

// PurgeExpired deletes dead rows and reports how many went.
func (s *SQLStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		DELETE FROM sheet_cache WHERE expires_at <= ?
	`), s.now().UnixMilli())
	if err != nil {
		return 0, errors.CacheError("purge", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.CacheError("purge", err)
	}
	return n, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
