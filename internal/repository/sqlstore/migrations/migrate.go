package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"todo-api/internal/logging"
)

//go:embed sqlite/*.sql postgres/*.sql
var migrationsFS embed.FS

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// dialectDir maps a driver name onto the directory holding its SQL files.
func dialectDir(dialect string) (string, error) {
	switch dialect {
	case "sqlite":
		return "sqlite", nil
	case "pgx":
		return "postgres", nil
	default:
		return "", fmt.Errorf("no migrations for dialect %q", dialect)
	}
}

func placeholder(dialect string, n int) string {
	if dialect == "pgx" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// RunMigrations executes all pending migrations for the given dialect
func RunMigrations(ctx context.Context, db *sql.DB, dialect string) error {
	if err := createMigrationsTable(ctx, db, dialect); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	if err := checkDirty(ctx, db); err != nil {
		return err
	}

	migrations, err := LoadMigrations(dialect)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	applied, err := getAppliedMigrations(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}
		logging.Debugf("applying migration %06d_%s\n", migration.Version, migration.Name)
		if err := applyMigration(ctx, db, dialect, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// RollbackLast reverts the most recently applied migration. It returns the
// reverted version, or 0 when nothing has been applied.
func RollbackLast(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	if err := createMigrationsTable(ctx, db, dialect); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT MAX(version) FROM migrations").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to find latest migration: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}

	migrations, err := LoadMigrations(dialect)
	if err != nil {
		return 0, fmt.Errorf("failed to load migrations: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version != int(version.Int64) {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, migration.Down); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to revert migration %d: %w", migration.Version, err)
		}
		query := "DELETE FROM migrations WHERE version = " + placeholder(dialect, 1)
		if _, err := tx.ExecContext(ctx, query, migration.Version); err != nil {
			tx.Rollback()
			return 0, err
		}
		return migration.Version, tx.Commit()
	}

	return 0, fmt.Errorf("migration %d is applied but has no source file", version.Int64)
}

func createMigrationsTable(ctx context.Context, db *sql.DB, dialect string) error {
	appliedType := "DATETIME"
	if dialect == "pgx" {
		appliedType = "TIMESTAMPTZ"
	}
	query := `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at ` + appliedType + ` DEFAULT CURRENT_TIMESTAMP,
		dirty BOOLEAN NOT NULL DEFAULT FALSE
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

// checkDirty refuses to continue when a previous run left a migration half applied.
func checkDirty(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations WHERE dirty ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to check migration state: %w", err)
	}
	defer rows.Close()

	var dirty []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return err
		}
		dirty = append(dirty, version)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(dirty) > 0 {
		return fmt.Errorf("database is in a dirty state, failed migration(s): %v", dirty)
	}
	return nil
}

// LoadMigrations reads the embedded migrations for a dialect, sorted by version
func LoadMigrations(dialect string) ([]Migration, error) {
	dir, err := dialectDir(dialect)
	if err != nil {
		return nil, err
	}

	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version, name := parseFilename(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := fs.ReadFile(migrationsFS, dir+"/"+entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := fs.ReadFile(migrationsFS, dir+"/"+downFile)
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    name,
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func getAppliedMigrations(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// applyMigration records the version as dirty outside the transaction, so a
// failed Up leaves the marker behind and later runs refuse to continue.
func applyMigration(ctx context.Context, db *sql.DB, dialect string, migration Migration) error {
	mark := "INSERT INTO migrations (version, dirty) VALUES (" + placeholder(dialect, 1) + ", TRUE)"
	if _, err := db.ExecContext(ctx, mark, migration.Version); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, migration.Up); err != nil {
		tx.Rollback()
		return err
	}

	clean := "UPDATE migrations SET dirty = FALSE WHERE version = " + placeholder(dialect, 1)
	if _, err := tx.ExecContext(ctx, clean, migration.Version); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func parseFilename(filename string) (int, string) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, ""
	}
	name := strings.TrimSuffix(filename, ".up.sql")
	if i := strings.IndexByte(name, '_'); i >= 0 {
		name = name[i+1:]
	}
	return version, name
}
