package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

// CacheDB manages the SQLite database connection for caching
type CacheDB struct {
	db    *sql.DB
	mu    sync.RWMutex
	path  string
	table string
}

// NewCacheDB opens the database at dbPath and creates the collection table.
func NewCacheDB(dbPath, collection string) (*CacheDB, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	if err := validateCollection(collection); err != nil {
		return nil, err
	}
	if dbPath == "" {
		dbPath = "./cache.db"
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	c := &CacheDB{
		db:    db,
		path:  dbPath,
		table: collection,
	}
	if err := c.createTable(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(err, closeErr)
	}

	slog.Debug("Opened cache database", "path", dbPath, "table", collection)
	return c, nil
}

func (c *CacheDB) createTable() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.Exec(cacheSchema(c.table)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *CacheDB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get retrieves the cached bytes for key.
func (c *CacheDB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sq.Select("data").
		From(c.table).
		Where(sq.Eq{"cache_key": key}).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build cache query: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var data string
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query cache: %w", err)
	}

	return []byte(data), true, nil
}

// Set stores data under key, replacing any existing entry.
func (c *CacheDB) Set(ctx context.Context, key string, data []byte) error {
	query, args, err := sq.Insert(c.table).
		Options("OR REPLACE").
		Columns("cache_key", "data", "cached_at").
		Values(key, string(data), sq.Expr("CURRENT_TIMESTAMP")).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cache insert: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (c *CacheDB) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From(c.table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}
