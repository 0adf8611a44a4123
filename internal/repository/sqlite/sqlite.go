package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mikkelsv/taskvault/internal/domain"
	"github.com/mikkelsv/taskvault/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database handle and exposes typed repositories.
type DB struct {
	SqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for
// use: WAL mode, foreign key enforcement, and a single writer
// connection (SQLite serializes writers anyway).
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

// Close closes the underlying database handle.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Users returns the user repository backed by this database.
func (d *DB) Users() *UserRepository {
	return NewUserRepository(d)
}

// Tasks returns the task repository backed by this database.
func (d *DB) Tasks() *TaskRepository {
	return NewTaskRepository(d)
}
