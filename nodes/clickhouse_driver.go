package nodes

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/joewashear007/n8n-nodes-clickhouse/core"
)

// clickhouseDriver wraps the database handle of a single node invocation.
type clickhouseDriver struct {
	db *sql.DB
}

// Query executes a statement and returns a stream over its rows.
func (d *clickhouseDriver) Query(ctx context.Context, query string) (core.ResultStream, error) {
	dbRows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	header, err := dbRows.Columns()
	if err != nil {
		_ = dbRows.Close()
		return nil, err
	}

	return &rowStream{
		rows:   dbRows,
		header: header,
	}, nil
}

// Insert writes rows into the table as a single client batch. The
// transaction is the client's batch delimiter - ClickHouse itself has no
// transactions.
func (d *clickhouseDriver) Insert(ctx context.Context, table string, columns []string, rows []core.Row) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, insertStatement(table, columns))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// insertStatement renders the batch statement. The table name is used
// verbatim so schema qualified names keep working; column identifiers come
// from item payloads and are quoted, embedded quotes doubled.
func insertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = `"` + strings.ReplaceAll(column, `"`, `""`) + `"`
		placeholders[i] = "?"
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
	)
}

// Probe runs a trivial select to verify the connection end to end.
func (d *clickhouseDriver) Probe(ctx context.Context) error {
	var one int
	return d.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

func (d *clickhouseDriver) Close() {
	_ = d.db.Close()
}

var _ core.ResultStream = (*rowStream)(nil)

// rowStream adapts database/sql row iteration to the ResultStream contract.
type rowStream struct {
	rows   *sql.Rows
	header core.Header
	err    error
}

func (s *rowStream) Header() core.Header {
	return s.header
}

func (s *rowStream) HasNext() bool {
	if s.rows.Next() {
		return true
	}

	// no next row, check for any new result sets
	if s.rows.NextResultSet() && s.rows.Next() {
		return true
	}

	// iteration is over, keep the terminal error for Err
	s.err = s.rows.Err()
	return false
}

// Err reports the failure that stopped the iteration. A stream cut off
// mid-read looks exhausted to HasNext, so callers have to check Err to
// tell a complete result from a truncated one.
func (s *rowStream) Err() error {
	return s.err
}

func (s *rowStream) Next() (core.Row, error) {
	dbCols, err := s.rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make([]any, len(dbCols))
	columnPointers := make([]any, len(dbCols))
	for i := range columns {
		columnPointers[i] = &columns[i]
	}

	if err := s.rows.Scan(columnPointers...); err != nil {
		return nil, err
	}

	row := make(core.Row, len(dbCols))
	for i := range dbCols {
		row[i] = normalizeValue(*columnPointers[i].(*any))
	}

	return row, nil
}

func (s *rowStream) Close() {
	_ = s.rows.Close()
}

// normalizeValue converts driver byte blobs to strings, the shape item
// payloads expect.
func normalizeValue(val any) any {
	if b, ok := val.([]byte); ok {
		return string(b)
	}
	return val
}
