package gen

import (
	"strings"

	"github.com/syssam/dbgen"
)

// NullableMarker suffixes an override key that applies only to nullable
// columns. Its expression is used verbatim, without pointer wrapping.
const NullableMarker = "?"

// Overrides maps upper-cased raw type names to Go type expressions, for
// example "MOOD" => "github.com/acme/types.Mood" or "CITEXT?" => "sql.NullString".
// Build it with NewOverrides.
type Overrides map[string]string

// NewOverrides normalizes the keys of m to upper case. Entries that collide
// after normalization, empty keys and empty expressions are rejected.
func NewOverrides(m map[string]string) (Overrides, error) {
	o := make(Overrides, len(m))
	origin := make(map[string]string, len(m))
	for k, v := range m {
		key := normalizeKey(k)
		switch {
		case key == "" || key == NullableMarker:
			return nil, dbgen.NewMalformedOverrideError(k, "empty type name")
		case strings.TrimSpace(v) == "":
			return nil, dbgen.NewMalformedOverrideError(k, "empty type expression")
		}
		if prev, ok := origin[key]; ok {
			// Report the pair in a stable order regardless of map iteration.
			a, b := prev, k
			if b < a {
				a, b = b, a
			}
			return nil, dbgen.NewMalformedOverrideError(b, "ambiguous with "+`"`+a+`"`)
		}
		origin[key] = k
		o[key] = strings.TrimSpace(v)
	}
	return o, nil
}

func normalizeKey(k string) string {
	k = strings.TrimSpace(k)
	if base, ok := strings.CutSuffix(k, NullableMarker); ok {
		return strings.ToUpper(strings.TrimSpace(base)) + NullableMarker
	}
	return strings.ToUpper(k)
}

// lookup returns the expression for an already normalized key.
func (o Overrides) lookup(key string) (string, bool) {
	expr, ok := o[key]
	return expr, ok
}
