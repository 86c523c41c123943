package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// ScanArray returns a scan destination for a Postgres array column.
func ScanArray[T any](dst *[]T) any {
	return pq.Array(dst)
}

// ScanNullArray returns a scan destination for a nullable Postgres array
// column. NULL leaves *dst nil.
func ScanNullArray[T any](dst **[]T) sql.Scanner {
	return nullArray[T]{dst: dst}
}

type nullArray[T any] struct {
	dst **[]T
}

// Scan implements the sql.Scanner interface.
func (n nullArray[T]) Scan(src any) error {
	if src == nil {
		*n.dst = nil
		return nil
	}
	var v []T
	if err := pq.Array(&v).Scan(src); err != nil {
		return err
	}
	*n.dst = &v
	return nil
}

// ScanJSON returns a scan destination for a JSON column. It accepts the
// document as text or bytes, and NULL leaves *dst nil.
func ScanJSON(dst *json.RawMessage) sql.Scanner {
	return jsonScanner{dst: dst}
}

// ScanNullJSON is like ScanJSON for a pointer field. NULL leaves *dst nil.
func ScanNullJSON(dst **json.RawMessage) sql.Scanner {
	return nullJSON{dst: dst}
}

type jsonScanner struct {
	dst *json.RawMessage
}

// Scan implements the sql.Scanner interface.
func (j jsonScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j.dst = nil
	case []byte:
		// The driver may reuse the buffer after Scan returns.
		*j.dst = append(json.RawMessage(nil), v...)
	case string:
		*j.dst = json.RawMessage(v)
	default:
		return fmt.Errorf("dialect/sql: cannot scan %T into json.RawMessage", src)
	}
	return nil
}

type nullJSON struct {
	dst **json.RawMessage
}

// Scan implements the sql.Scanner interface.
func (n nullJSON) Scan(src any) error {
	if src == nil {
		*n.dst = nil
		return nil
	}
	var v json.RawMessage
	if err := (jsonScanner{dst: &v}).Scan(src); err != nil {
		return err
	}
	*n.dst = &v
	return nil
}

// QueryAll runs query and scans every row into a new *T using the
// destinations returned by dest.
func QueryAll[T any](ctx context.Context, db ExecQuerier, query string, dest func(*T) []any) ([]*T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var objs []*T
	for rows.Next() {
		obj := new(T)
		if err := rows.Scan(dest(obj)...); err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, rows.Err()
}

// QueryOne runs query and scans its first row. It returns ErrNoRows when
// the query matches nothing.
func QueryOne[T any](ctx context.Context, db ExecQuerier, query string, dest func(*T) []any) (*T, error) {
	objs, err := QueryAll(ctx, db, query, dest)
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, ErrNoRows
	}
	return objs[0], nil
}

// QueryIDs runs an INSERT ... RETURNING statement and collects the returned
// identifiers in row order.
func QueryIDs[T any](ctx context.Context, db ExecQuerier, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []T
	for rows.Next() {
		var id T
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// QueryID is like QueryIDs for a single inserted row.
func QueryID[T any](ctx context.Context, db ExecQuerier, query string) (T, error) {
	var id T
	ids, err := QueryIDs[T](ctx, db, query)
	if err != nil {
		return id, err
	}
	if len(ids) == 0 {
		return id, ErrNoRows
	}
	return ids[0], nil
}

// LastInsertID executes query and returns the identifier the database
// generated for its first row.
func LastInsertID(ctx context.Context, db ExecQuerier, query string) (int64, error) {
	res, err := db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
