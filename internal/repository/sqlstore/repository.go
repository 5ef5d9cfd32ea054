package sqlstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/errors"
	"todo-api/internal/repository/sqlstore/migrations"
)

// Repository defines the interface for item persistence
type Repository interface {
	// Create operations
	CreateItem(ctx context.Context, item *Item) error

	// Read operations
	GetItem(ctx context.Context, id int64) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	CountItems(ctx context.Context) (int64, error)

	// Update operations
	UpdateItem(ctx context.Context, item *Item) error

	// Delete operations
	DeleteItem(ctx context.Context, id int64) error

	// Utility
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// Options configures how the store connects to its database
type Options struct {
	Driver         string
	DSN            string
	QueryTimeout   time.Duration
	WriteTimeout   time.Duration
	DirPermissions os.FileMode
}

// SQLStore implements the Repository interface on database/sql
type SQLStore struct {
	db           *sql.DB
	dialect      Dialect
	queryTimeout time.Duration
	writeTimeout time.Duration
}

// New opens the database described by opts and verifies the connection.
// It does not touch the schema; call Migrate once during start-up.
func New(ctx context.Context, opts Options) (*SQLStore, error) {
	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	dsn := opts.DSN
	if dialect.Name == DialectSQLite && !dialect.IsMemory(dsn) {
		perms := opts.DirPermissions
		if perms == 0 {
			perms = 0755
		}
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, perms); err != nil {
				return nil, errors.NewDatabaseError("create database directory", err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)"
		}
	}

	db, err := sql.Open(dialect.Name, dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if dialect.IsMemory(dsn) {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := NewWithDB(db, dialect, opts.QueryTimeout, opts.WriteTimeout)
	if err := store.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewFromConfig opens the store described by the application configuration
func NewFromConfig(ctx context.Context, cfg *config.Config) (*SQLStore, error) {
	return New(ctx, Options{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.GetDataSourceName(),
		QueryTimeout:   cfg.Database.QueryTimeout,
		WriteTimeout:   cfg.Database.WriteTimeout,
		DirPermissions: os.FileMode(cfg.Database.DirPermissions),
	})
}

// NewWithDB wraps an already opened database handle
func NewWithDB(db *sql.DB, dialect Dialect, queryTimeout, writeTimeout time.Duration) *SQLStore {
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	return &SQLStore{
		db:           db,
		dialect:      dialect,
		queryTimeout: queryTimeout,
		writeTimeout: writeTimeout,
	}
}

// Migrate applies all pending schema migrations
func (r *SQLStore) Migrate(ctx context.Context) error {
	if err := migrations.RunMigrations(ctx, r.db, r.dialect.Name); err != nil {
		return errors.NewDatabaseError("run migrations", err)
	}
	return nil
}

// Rollback reverts the most recently applied migration
func (r *SQLStore) Rollback(ctx context.Context) (int, error) {
	version, err := migrations.RollbackLast(ctx, r.db, r.dialect.Name)
	if err != nil {
		return 0, errors.NewDatabaseError("rollback migration", err)
	}
	return version, nil
}

// Ping checks that the database is reachable
func (r *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return HandleDatabaseError("ping", err)
	}
	return nil
}

// Close closes the database connection
func (r *SQLStore) Close() error {
	return r.db.Close()
}

// DB exposes the underlying handle for migrations tooling and tests
func (r *SQLStore) DB() *sql.DB {
	return r.db
}

// CreateItem inserts a new item and assigns its ID
func (r *SQLStore) CreateItem(ctx context.Context, item *Item) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := r.dialect.Rebind(`INSERT INTO items (name, is_complete) VALUES (?, ?) RETURNING id`)
	id, err := QueryInsertID(ctx, r.db, query, item.Name, item.IsComplete)
	if err != nil {
		return err
	}

	item.ID = id
	return nil
}

// GetItem retrieves an item by ID
func (r *SQLStore) GetItem(ctx context.Context, id int64) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := r.dialect.Rebind(`SELECT id, name, is_complete FROM items WHERE id = ?`)
	return QuerySingle(ctx, r.db, query, ScanItem, "item", strconv.FormatInt(id, 10), id)
}

// ListItems retrieves all items
func (r *SQLStore) ListItems(ctx context.Context) ([]*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT id, name, is_complete FROM items ORDER BY id`
	return QueryMultiple(ctx, r.db, query, ScanItems, "items")
}

// CountItems returns the number of stored items
func (r *SQLStore) CountItems(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, HandleDatabaseError("count items", err)
	}
	return n, nil
}

// UpdateItem overwrites the name and completion flag of an existing item
func (r *SQLStore) UpdateItem(ctx context.Context, item *Item) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := r.dialect.Rebind(`UPDATE items SET name = ?, is_complete = ? WHERE id = ?`)
	return ExecuteWithRowsAffected(ctx, r.db, query, "item", strconv.FormatInt(item.ID, 10), item.Name, item.IsComplete, item.ID)
}

// DeleteItem deletes an item by ID
func (r *SQLStore) DeleteItem(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := r.dialect.Rebind(`DELETE FROM items WHERE id = ?`)
	return ExecuteWithRowsAffected(ctx, r.db, query, "item", strconv.FormatInt(id, 10), id)
}
