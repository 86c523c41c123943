package gen

import (
	"slices"
	"strings"

	"github.com/syssam/dbgen"
)

// Vocabulary is a dialect's read-only type table consumed by the TypeMapper.
type Vocabulary struct {
	// Types maps upper-cased raw type names to Go type expressions.
	Types map[string]string
	// NullSuppressed lists types that are never pointer-wrapped because
	// their Go representation already encodes absence (JSON documents).
	NullSuppressed []string
	// ArrayPrefix marks array types, e.g. "_" for Postgres "_int4".
	// Empty when the dialect has no array types.
	ArrayPrefix string
	// CharTypes are the character types that may carry a length, e.g.
	// VARCHAR(255). Any length is discarded.
	CharTypes []string
	// NumericPrefixes are the arbitrary-precision numeric families mapped to
	// decimal.Decimal regardless of precision and scale.
	NumericPrefixes []string
}

// Type expressions used by the built-in vocabularies.
const (
	TypeDecimal = "decimal.Decimal"
	TypeString  = "string"
)

// TypeMapper resolves raw catalog types to Go type expressions.
// It holds no state besides its vocabulary, so Resolve is deterministic.
type TypeMapper struct {
	vocab *Vocabulary
}

// NewTypeMapper returns a TypeMapper for the vocabulary.
func NewTypeMapper(v *Vocabulary) *TypeMapper {
	return &TypeMapper{vocab: v}
}

// Resolve returns the Go type expression for a raw column type. Nullable
// columns are wrapped as pointers, except null-suppressed types and
// nullable-specific overrides. The rules apply in order, first match wins:
//
//  1. the raw type is upper-cased
//  2. null-suppressed types are never wrapped
//  3. arrays resolve their element and become []T, then wrap
//  4. character types with a length become string
//  5. numeric families become decimal.Decimal
//  6. a nullable-specific override (KEY?) is returned verbatim
//  7. a plain override is wrapped
//  8. a built-in type is wrapped
//
// Anything else fails with an *dbgen.UnsupportedTypeError.
func (m *TypeMapper) Resolve(raw string, nullable bool, overrides Overrides) (string, error) {
	r, err := m.resolve(raw, nullable, overrides)
	return r.expr, err
}

// resolution is the outcome of a lookup. overridden reports whether the
// expression came from the override table.
type resolution struct {
	expr       string
	overridden bool
}

func (m *TypeMapper) resolve(raw string, nullable bool, overrides Overrides) (resolution, error) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if slices.Contains(m.vocab.NullSuppressed, t) {
		nullable = false
	}
	if p := m.vocab.ArrayPrefix; p != "" && len(t) > len(p) && strings.HasPrefix(t, p) {
		elem, err := m.resolve(t[len(p):], nullable, overrides)
		if err != nil {
			return resolution{}, dbgen.NewUnsupportedTypeError(raw)
		}
		return resolution{
			expr:       wrap(nullable, "[]"+strings.TrimPrefix(elem.expr, "*")),
			overridden: elem.overridden,
		}, nil
	}
	if m.isChar(t) {
		return resolution{expr: wrap(nullable, TypeString)}, nil
	}
	if m.isNumeric(t) {
		return resolution{expr: wrap(nullable, TypeDecimal)}, nil
	}
	if nullable {
		if expr, ok := overrides.lookup(t + NullableMarker); ok {
			return resolution{expr: expr, overridden: true}, nil
		}
	}
	if expr, ok := overrides.lookup(t); ok {
		return resolution{expr: wrap(nullable, expr), overridden: true}, nil
	}
	if base, ok := m.vocab.Types[t]; ok {
		return resolution{expr: wrap(nullable, base)}, nil
	}
	return resolution{}, dbgen.NewUnsupportedTypeError(raw)
}

// isChar reports whether t is a character type with a length specifier.
func (m *TypeMapper) isChar(t string) bool {
	name, _, ok := strings.Cut(t, "(")
	if !ok {
		return false
	}
	return slices.Contains(m.vocab.CharTypes, strings.TrimSpace(name))
}

func (m *TypeMapper) isNumeric(t string) bool {
	for _, p := range m.vocab.NumericPrefixes {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

// wrap returns base as a pointer type when nullable.
func wrap(nullable bool, base string) string {
	if nullable {
		return "*" + base
	}
	return base
}
