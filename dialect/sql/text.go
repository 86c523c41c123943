package sql

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// The functions below render Go values as the text that generated code
// quotes into statements. Every value passes through exactly one of them.

type (
	signed interface {
		~int | ~int8 | ~int16 | ~int32 | ~int64
	}
	unsigned interface {
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
	}
	float interface {
		~float32 | ~float64
	}
)

// Int renders a signed integer.
func Int[T signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

// Uint renders an unsigned integer.
func Uint[T unsigned](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

// Float renders a floating point number with the shortest representation
// that round-trips at the value's own precision.
func Float[T float](v T) string {
	return strconv.FormatFloat(float64(v), 'g', -1, reflect.TypeFor[T]().Bits())
}

// Bool renders a boolean as 1 or 0, which every dialect accepts for its
// boolean type.
func Bool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// String returns v unchanged.
func String(v string) string {
	return v
}

// Stringer renders values such as uuid.UUID or decimal.Decimal through
// their String method.
func Stringer[T fmt.Stringer](v T) string {
	return v.String()
}

// JSON renders a raw JSON document. An empty document renders as JSON null.
func JSON(v json.RawMessage) string {
	if len(v) == 0 {
		return "null"
	}
	return string(v)
}

// Array renders a Postgres array literal, rendering each element with f.
func Array[T any](v []T, f func(T) string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		s := f(e)
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		b.WriteString(s)
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String()
}
