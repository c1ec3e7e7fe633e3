// Package database opens the SQL handle shared by the gateway and bootstraps the schema.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"

	"student-records/internal/config"
	"student-records/internal/logger"
)

// Schema creates the student table when it does not exist yet.
// There is no versioning; an existing table is left as is.
const Schema = `CREATE TABLE IF NOT EXISTS student (
	rollNo BIGINT NOT NULL PRIMARY KEY,
	name VARCHAR(100) NOT NULL,
	fname VARCHAR(100) NOT NULL,
	sub VARCHAR(100) NOT NULL,
	grade VARCHAR(10) NOT NULL
)`

// Open connects to the configured backend, verifies the connection and
// makes sure the schema exists. The returned handle is owned by the caller.
func Open(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*sql.DB, Dialect, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, nil, err
	}

	dsn := cfg.DSN
	switch dialect.(type) {
	case SQLite:
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, nil, err
		}
	case MySQL:
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, nil, err
		}
	}

	db, err := sql.Open(dialect.Name(), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s database: %w", dialect.Name(), err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns < 1 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("connect to %s database: %w", dialect.Name(), err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Info("Database", "connection established", map[string]interface{}{
		"driver":         dialect.Name(),
		"max_open_conns": maxConns,
	})

	return db, dialect, nil
}

// EnsureSchema runs the table bootstrap statement.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create student table: %w", err)
	}
	return nil
}

// mysqlDSN makes RowsAffected count matched rows, so an update that writes
// the current value is not mistaken for a missing record.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

func ensureSQLiteDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}
