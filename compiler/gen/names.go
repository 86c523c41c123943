package gen

import (
	"go/token"
	"strings"
	"sync"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	acronymsMu sync.RWMutex
	acronyms   = map[string]bool{
		"ACL": true, "API": true, "ASCII": true, "AWS": true, "CPU": true,
		"CSS": true, "DNS": true, "EOF": true, "GUID": true, "HTML": true,
		"HTTP": true, "HTTPS": true, "ID": true, "IP": true, "JSON": true,
		"LHS": true, "QPS": true, "RAM": true, "RHS": true, "RPC": true,
		"SLA": true, "SMTP": true, "SQL": true, "SSH": true, "TCP": true,
		"TLS": true, "TTL": true, "UDP": true, "UI": true, "UID": true,
		"URI": true, "URL": true, "UTF8": true, "UUID": true, "VM": true,
		"XML": true, "XMPP": true, "XSRF": true, "XSS": true,
	}
)

// AddAcronym registers an additional acronym for pascal-cased field names.
func AddAcronym(word string) {
	acronymsMu.Lock()
	defer acronymsMu.Unlock()
	acronyms[strings.ToUpper(word)] = true
}

func isAcronym(word string) bool {
	acronymsMu.RLock()
	defer acronymsMu.RUnlock()
	return acronyms[strings.ToUpper(word)]
}

// StructName derives the record type name of a table: the class-cased
// table name with its last word made singular. It is idempotent on its own
// output.
//
//	StructName("group_history") // GroupHistory
//	StructName("users")         // User
//	StructName("addresses")     // Address
//	StructName("status")        // Status
func StructName(table string) string {
	words := segments(table)
	if n := len(words); n > 0 {
		words[n-1] = singular(strings.ToLower(words[n-1]))
	}
	return ClassCase(strings.Join(words, "_"))
}

// singular returns the singular form of a lower-cased word. Words that are
// their own singular (status, address, news) are kept, and a singular form
// that would itself be singularized again is rejected.
func singular(w string) string {
	if isSingular(w) {
		return w
	}
	if s := inflect.Singularize(w); isSingular(s) {
		return s
	}
	return w
}

// isSingular reports whether w survives a plural round trip unchanged.
func isSingular(w string) bool {
	return inflect.Singularize(inflect.Pluralize(w)) == w
}

// ClassCase splits s on non-alphanumeric separators and lower-to-upper case
// boundaries, capitalizes the first letter of each segment, lowercases the
// remainder and joins the segments.
func ClassCase(s string) string {
	var (
		b     strings.Builder
		title = cases.Title(language.Und)
	)
	for _, seg := range segments(s) {
		b.WriteString(title.String(seg))
	}
	return b.String()
}

// segments splits s into words. A word ends at a separator or where a
// lowercase letter or digit is followed by an uppercase letter.
func segments(s string) []string {
	var (
		words []string
		cur   []rune
		prev  rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		switch {
		case isSeparator(r):
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// pascal converts a column name to an exported Go identifier, keeping
// registered acronyms upper-cased.
//
//	user_id   => UserID
//	http_code => HTTPCode
//	full-name => FullName
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	var b strings.Builder
	for _, w := range words {
		if isAcronym(w) {
			b.WriteString(strings.ToUpper(w))
			continue
		}
		r := []rune(w)
		b.WriteString(string(unicode.ToUpper(r[0])))
		b.WriteString(string(r[1:]))
	}
	return identifier(b.String())
}

// plural returns the plural form of a struct name, used for list functions.
func plural(name string) string {
	p := inflect.Pluralize(name)
	if p == name {
		return name + "List"
	}
	return p
}

// identifier replaces characters that cannot appear in a Go identifier and
// prefixes names that do not start with a letter.
func identifier(s string) string {
	if s == "" {
		return "_"
	}
	r := []rune(s)
	for i, c := range r {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			r[i] = '_'
		}
	}
	if !unicode.IsLetter(r[0]) && r[0] != '_' {
		return "_" + string(r)
	}
	return string(r)
}

// EscapeFieldName returns name as a valid Go field symbol. Go keywords get a
// leading underscore (type => _type). SQL text always keeps the raw column name.
func EscapeFieldName(name string) string {
	if token.Lookup(name).IsKeyword() {
		return "_" + name
	}
	return name
}

// FieldNaming selects how column names become struct field names.
type FieldNaming string

// Field naming styles.
const (
	// FieldNamingPascal exports fields in acronym-aware pascal case (user_id => UserID).
	FieldNamingPascal FieldNaming = "pascal"
	// FieldNamingColumn keeps the column spelling (user_id => user_id).
	// Lower-case columns give unexported fields, so records can only be
	// built and read inside the generated package. Use it when the
	// generated package is extended by hand-written code in the same
	// package; other packages need FieldNamingPascal.
	FieldNamingColumn FieldNaming = "column"
)

// FieldName returns the struct field symbol for a column.
func (n FieldNaming) FieldName(column string) string {
	if n == FieldNamingColumn {
		return EscapeFieldName(identifier(column))
	}
	return EscapeFieldName(pascal(column))
}

// Valid reports whether n is a known naming style.
func (n FieldNaming) Valid() bool {
	return n == FieldNamingPascal || n == FieldNamingColumn
}
