// Package gateway mediates all access to the student table.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"student-records/internal/database"
	"student-records/internal/logger"
	"student-records/internal/models"
)

const component = "Gateway"

const selectColumns = "SELECT rollNo, name, fname, sub, grade FROM student"

// Gateway runs typed operations against the student table over a handle it
// owns from construction until Close.
type Gateway struct {
	db      *sql.DB
	dialect database.Dialect
	logger  logger.Logger

	closeOnce sync.Once
	closeErr  error
	closed    bool
	mu        sync.RWMutex
}

// New wraps an open handle. The gateway takes ownership and releases it in Close.
func New(db *sql.DB, dialect database.Dialect, log logger.Logger) *Gateway {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Gateway{
		db:      db,
		dialect: dialect,
		logger:  log,
	}
}

// FetchAll returns every record ordered by roll number.
func (g *Gateway) FetchAll(ctx context.Context) ([]models.StudentRecord, error) {
	const op = "fetch students"
	if err := g.checkOpen(op); err != nil {
		return []models.StudentRecord{}, err
	}

	records, err := g.query(ctx, selectColumns+" ORDER BY rollNo")
	if err != nil {
		return []models.StudentRecord{}, g.fail(op, KindDatabase, err, nil)
	}
	return records, nil
}

// Add inserts a new record. An existing roll number yields ErrDuplicateRollNo.
func (g *Gateway) Add(ctx context.Context, rec models.StudentRecord) error {
	const op = "add student"
	if err := g.checkOpen(op); err != nil {
		return err
	}

	query := fmt.Sprintf(
		"INSERT INTO student (rollNo, name, fname, sub, grade) VALUES (%s)",
		g.placeholders(5),
	)

	err := g.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, rec.RollNo, rec.Name, rec.FathersName, rec.Subject, rec.Grade)
		return err
	})
	if err != nil {
		fields := map[string]interface{}{"roll_no": rec.RollNo}
		if g.dialect.IsDuplicateKey(err) {
			return g.fail(op, KindDuplicate, fmt.Errorf("%w: %d", ErrDuplicateRollNo, rec.RollNo), fields)
		}
		return g.fail(op, KindDatabase, err, fields)
	}

	g.logger.Debug(component, "student added", map[string]interface{}{"roll_no": rec.RollNo})
	return nil
}

// UpdateField sets one updatable field of an existing record.
func (g *Gateway) UpdateField(ctx context.Context, rollNo int64, field models.Field, value string) error {
	const op = "update student"
	if !field.Updatable() {
		return g.fail(op, KindInvalidField, fmt.Errorf("%w: %s cannot be updated", ErrInvalidField, field), nil)
	}
	if err := g.checkOpen(op); err != nil {
		return err
	}

	// field.Column() comes from a fixed table, never from caller input
	query := fmt.Sprintf("UPDATE student SET %s = %s WHERE rollNo = %s",
		field.Column(), g.dialect.Placeholder(1), g.dialect.Placeholder(2))

	err := g.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, value, rollNo)
		if err != nil {
			return err
		}
		return requireRow(res, rollNo)
	})
	fields := map[string]interface{}{"roll_no": rollNo, "field": field.String()}
	if err != nil {
		return g.fail(op, kindFor(err), err, fields)
	}

	g.logger.Debug(component, "student updated", fields)
	return nil
}

// DeleteByRollNo removes one record. A missing roll number yields ErrNotFound.
func (g *Gateway) DeleteByRollNo(ctx context.Context, rollNo int64) error {
	const op = "delete student"
	if err := g.checkOpen(op); err != nil {
		return err
	}

	query := "DELETE FROM student WHERE rollNo = " + g.dialect.Placeholder(1)

	err := g.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, rollNo)
		if err != nil {
			return err
		}
		return requireRow(res, rollNo)
	})
	fields := map[string]interface{}{"roll_no": rollNo}
	if err != nil {
		return g.fail(op, kindFor(err), err, fields)
	}

	g.logger.Debug(component, "student deleted", fields)
	return nil
}

// SearchBy returns records whose field equals value exactly.
// Only searchable fields are accepted; anything else returns an empty result.
func (g *Gateway) SearchBy(ctx context.Context, field models.Field, value string) ([]models.StudentRecord, error) {
	const op = "search students"
	if !field.Searchable() {
		return []models.StudentRecord{}, g.fail(op, KindInvalidField,
			fmt.Errorf("%w: cannot search by %s", ErrInvalidField, field), nil)
	}
	if err := g.checkOpen(op); err != nil {
		return []models.StudentRecord{}, err
	}

	var arg interface{} = value
	if field == models.FieldRollNo {
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return []models.StudentRecord{}, g.fail(op, KindInvalidValue,
				fmt.Errorf("%w: roll number must be an integer", ErrInvalidValue), nil)
		}
		arg = n
	}

	query := fmt.Sprintf("%s WHERE %s = %s ORDER BY rollNo", selectColumns, field.Column(), g.dialect.Placeholder(1))
	records, err := g.query(ctx, query, arg)
	if err != nil {
		return []models.StudentRecord{}, g.fail(op, KindDatabase, err, map[string]interface{}{"field": field.String()})
	}
	return records, nil
}

// GradeDistribution counts records per grade, ordered by grade.
func (g *Gateway) GradeDistribution(ctx context.Context) ([]models.GradeCount, error) {
	const op = "grade distribution"
	if err := g.checkOpen(op); err != nil {
		return []models.GradeCount{}, err
	}

	rows, err := g.db.QueryContext(ctx, "SELECT grade, COUNT(*) FROM student GROUP BY grade ORDER BY grade")
	if err != nil {
		return []models.GradeCount{}, g.fail(op, KindDatabase, err, nil)
	}
	defer rows.Close()

	dist := []models.GradeCount{}
	for rows.Next() {
		var gc models.GradeCount
		if err := rows.Scan(&gc.Grade, &gc.Count); err != nil {
			return []models.GradeCount{}, g.fail(op, KindDatabase, err, nil)
		}
		dist = append(dist, gc)
	}
	if err := rows.Err(); err != nil {
		return []models.GradeCount{}, g.fail(op, KindDatabase, err, nil)
	}
	return dist, nil
}

// Close releases the database handle. Later calls return the first result.
func (g *Gateway) Close() error {
	g.closeOnce.Do(func() {
		g.mu.Lock()
		g.closed = true
		g.mu.Unlock()

		g.closeErr = g.db.Close()
		g.logger.Info(component, "database connection closed", nil)
	})
	return g.closeErr
}

// Shutdown satisfies shutdown.Shutdownable.
func (g *Gateway) Shutdown() {
	if err := g.Close(); err != nil {
		g.logger.Error(component, err, nil)
	}
}

func (g *Gateway) checkOpen(op string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.closed {
		return opError(op, KindDatabase, ErrClosed)
	}
	return nil
}

func (g *Gateway) query(ctx context.Context, query string, args ...interface{}) ([]models.StudentRecord, error) {
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.StudentRecord{}
	for rows.Next() {
		var r models.StudentRecord
		if err := rows.Scan(&r.RollNo, &r.Name, &r.FathersName, &r.Subject, &r.Grade); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// inTx commits when fn succeeds and rolls back otherwise.
func (g *Gateway) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			g.logger.Warning(component, "rollback failed", map[string]interface{}{"error": rbErr.Error()})
		}
		return err
	}
	return tx.Commit()
}

func (g *Gateway) placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = g.dialect.Placeholder(i + 1)
	}
	return strings.Join(marks, ", ")
}

func (g *Gateway) fail(op string, kind Kind, err error, fields map[string]interface{}) error {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["op"] = op
	fields["kind"] = kind.String()
	g.logger.Error(component, err, fields)
	return opError(op, kind, err)
}

func requireRow(res sql.Result, rollNo int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, rollNo)
	}
	return nil
}

func kindFor(err error) Kind {
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	return KindDatabase
}
