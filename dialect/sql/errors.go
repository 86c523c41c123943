package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ConstraintKind classifies constraint violations reported by the database
// when generated statements run.
type ConstraintKind int

// Constraint kinds.
const (
	NoConstraint ConstraintKind = iota
	UniqueConstraint
	ForeignKeyConstraint
	CheckConstraint
	NotNullConstraint
)

func (k ConstraintKind) String() string {
	switch k {
	case UniqueConstraint:
		return "unique"
	case ForeignKeyConstraint:
		return "foreign key"
	case CheckConstraint:
		return "check"
	case NotNullConstraint:
		return "not null"
	default:
		return "none"
	}
}

// Postgres SQLSTATE codes of class 23, integrity constraint violation.
var pgStates = map[string]ConstraintKind{
	"23505": UniqueConstraint,
	"23503": ForeignKeyConstraint,
	"23514": CheckConstraint,
	"23502": NotNullConstraint,
}

// MySQL server error numbers.
var mysqlNumbers = map[uint16]ConstraintKind{
	1062: UniqueConstraint,
	1451: ForeignKeyConstraint, // cannot delete or update a parent row
	1452: ForeignKeyConstraint, // cannot add or update a child row
	3819: CheckConstraint,
	1048: NotNullConstraint,
}

// SQLite reports constraint failures in the message only.
var sqliteMessages = []struct {
	text string
	kind ConstraintKind
}{
	{"UNIQUE constraint failed", UniqueConstraint},
	{"FOREIGN KEY constraint failed", ForeignKeyConstraint},
	{"CHECK constraint failed", CheckConstraint},
	{"NOT NULL constraint failed", NotNullConstraint},
}

// Constraint returns the kind of constraint err violates, or NoConstraint.
// It understands pgx, lib/pq, go-sql-driver/mysql and SQLite errors
// anywhere in the chain.
func Constraint(err error) ConstraintKind {
	if err == nil {
		return NoConstraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgStates[pgErr.Code]
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgStates[string(pqErr.Code)]
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlNumbers[myErr.Number]
	}
	msg := err.Error()
	for _, m := range sqliteMessages {
		if strings.Contains(msg, m.text) {
			return m.kind
		}
	}
	return NoConstraint
}

// IsConstraintError reports whether err is any constraint violation.
func IsConstraintError(err error) bool {
	return Constraint(err) != NoConstraint
}

// IsUniqueConstraintError reports whether err is a uniqueness violation,
// e.g. a duplicate value in a unique index.
func IsUniqueConstraintError(err error) bool {
	return Constraint(err) == UniqueConstraint
}

// IsForeignKeyConstraintError reports whether err is a foreign-key violation.
func IsForeignKeyConstraintError(err error) bool {
	return Constraint(err) == ForeignKeyConstraint
}

// IsCheckConstraintError reports whether err is a CHECK constraint violation.
func IsCheckConstraintError(err error) bool {
	return Constraint(err) == CheckConstraint
}
