package database

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect captures the per-backend differences the gateway has to care about
type Dialect interface {
	// Name is the registered database/sql driver name
	Name() string
	// Placeholder returns the bind marker for the n-th (1-based) argument
	Placeholder(n int) string
	// IsDuplicateKey reports whether err is a primary/unique key violation
	IsDuplicateKey(err error) bool
}

// ParseDialect resolves a configured driver name
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	case "postgres", "postgresql":
		return Postgres{}, nil
	case "mysql":
		return MySQL{}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", name)
}

// SQLite is the embedded default backend (modernc.org/sqlite)
type SQLite struct{}

func (SQLite) Name() string           { return "sqlite" }
func (SQLite) Placeholder(int) string { return "?" }

func (SQLite) IsDuplicateKey(err error) bool {
	var e *sqlite.Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		// extended result codes disabled
		return strings.Contains(e.Error(), "UNIQUE constraint failed")
	}
	return false
}

// Postgres uses github.com/lib/pq
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func (Postgres) IsDuplicateKey(err error) bool {
	var e *pq.Error
	return errors.As(err, &e) && e.Code == "23505"
}

// MySQL uses github.com/go-sql-driver/mysql
type MySQL struct{}

func (MySQL) Name() string           { return "mysql" }
func (MySQL) Placeholder(int) string { return "?" }

func (MySQL) IsDuplicateKey(err error) bool {
	var e *mysql.MySQLError
	return errors.As(err, &e) && e.Number == 1062
}
