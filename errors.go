// Package dbgen generates typed Go records and CRUD functions from a
// database catalog.
//
// The root package holds the error kinds shared by the catalog inspectors
// (dialect/sql/schema) and the generator (compiler/gen).
package dbgen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for generation failures.
var (
	// ErrConnection is returned when the catalog cannot be queried.
	ErrConnection = errors.New("dbgen: connection failure")

	// ErrTableNotFound is returned when introspection yields zero columns.
	ErrTableNotFound = errors.New("dbgen: table not found or empty")

	// ErrUnsupportedType is returned when a raw column type has no mapping
	// and no override.
	ErrUnsupportedType = errors.New("dbgen: unsupported type")

	// ErrMalformedOverride is returned when a type override table is ambiguous
	// or contains empty entries.
	ErrMalformedOverride = errors.New("dbgen: malformed type override")

	// ErrNoStringer is returned when a resolved Go type has no stringification
	// in the statement templates.
	ErrNoStringer = errors.New("dbgen: no stringer for type")
)

// ConnectionError wraps a failure reported by the database driver.
type ConnectionError struct {
	Dialect string
	Op      string
	Err     error
}

// Error returns the error string.
func (e *ConnectionError) Error() string {
	var b strings.Builder
	b.WriteString("dbgen: ")
	if e.Dialect != "" {
		b.WriteString(e.Dialect)
		b.WriteString(" ")
	}
	b.WriteString(e.Op)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the driver error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches ConnectionError.
// This allows errors.Is(connErr, ErrConnection) to return true.
func (e *ConnectionError) Is(err error) bool {
	return err == ErrConnection
}

// NewConnectionError returns a new ConnectionError for the given operation.
func NewConnectionError(dialect, op string, err error) *ConnectionError {
	return &ConnectionError{Dialect: dialect, Op: op, Err: err}
}

// IsConnectionError returns true if the error is a ConnectionError.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConnectionError
	return errors.As(err, &e) || errors.Is(err, ErrConnection)
}

// TableNotFoundError is returned when a table has no introspected columns.
type TableNotFoundError struct {
	Table string
}

// Error returns the error string.
func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("dbgen: table %q not found or has no columns", e.Table)
}

// Is reports whether the target error matches TableNotFoundError.
func (e *TableNotFoundError) Is(err error) bool {
	return err == ErrTableNotFound
}

// NewTableNotFoundError returns a new TableNotFoundError.
func NewTableNotFoundError(table string) *TableNotFoundError {
	return &TableNotFoundError{Table: table}
}

// IsTableNotFound returns true if the error is a TableNotFoundError.
func IsTableNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *TableNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrTableNotFound)
}

// UnsupportedTypeError carries the raw catalog type that could not be mapped.
// Column and Table are filled in once the failing column is known.
type UnsupportedTypeError struct {
	RawType string
	Column  string
	Table   string
}

// Error returns the error string.
func (e *UnsupportedTypeError) Error() string {
	var b strings.Builder
	b.WriteString("dbgen: unsupported type ")
	b.WriteString(fmt.Sprintf("%q", e.RawType))
	if e.Table != "" || e.Column != "" {
		b.WriteString(" (column ")
		if e.Table != "" {
			b.WriteString(e.Table)
			b.WriteString(".")
		}
		b.WriteString(e.Column)
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target error matches UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(err error) bool {
	return err == ErrUnsupportedType
}

// NewUnsupportedTypeError returns a new UnsupportedTypeError for the raw type.
func NewUnsupportedTypeError(rawType string) *UnsupportedTypeError {
	return &UnsupportedTypeError{RawType: rawType}
}

// IsUnsupportedType returns true if the error is an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedTypeError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupportedType)
}

// MalformedOverrideError describes a rejected type override entry.
type MalformedOverrideError struct {
	Key     string
	Message string
}

// Error returns the error string.
func (e *MalformedOverrideError) Error() string {
	return fmt.Sprintf("dbgen: malformed type override %q: %s", e.Key, e.Message)
}

// Is reports whether the target error matches MalformedOverrideError.
func (e *MalformedOverrideError) Is(err error) bool {
	return err == ErrMalformedOverride
}

// NewMalformedOverrideError returns a new MalformedOverrideError.
func NewMalformedOverrideError(key, message string) *MalformedOverrideError {
	return &MalformedOverrideError{Key: key, Message: message}
}

// IsMalformedOverride returns true if the error is a MalformedOverrideError.
func IsMalformedOverride(err error) bool {
	if err == nil {
		return false
	}
	var e *MalformedOverrideError
	return errors.As(err, &e) || errors.Is(err, ErrMalformedOverride)
}

// NoStringerError is returned when a statement value cannot be rendered to
// text because its Go type has no stringification.
type NoStringerError struct {
	Type   string
	Column string
	Table  string
}

// Error returns the error string.
func (e *NoStringerError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("dbgen: no stringer for type %s (column %s.%s)", e.Type, e.Table, e.Column)
	}
	return fmt.Sprintf("dbgen: no stringer for type %s", e.Type)
}

// Is reports whether the target error matches NoStringerError.
func (e *NoStringerError) Is(err error) bool {
	return err == ErrNoStringer
}

// NewNoStringerError returns a new NoStringerError.
func NewNoStringerError(typ, table, column string) *NoStringerError {
	return &NoStringerError{Type: typ, Table: table, Column: column}
}

// IsNoStringer returns true if the error is a NoStringerError.
func IsNoStringer(err error) bool {
	if err == nil {
		return false
	}
	var e *NoStringerError
	return errors.As(err, &e) || errors.Is(err, ErrNoStringer)
}
