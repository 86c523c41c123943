package sql

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertBuilder(t *testing.T) {
	t.Run("Single", func(t *testing.T) {
		d := Postgres
		b := d.InsertInto("users")
		b.Field("id")
		b.Field("name")
		b.Values(d.Quote(Int(int64(1))), d.Quote(String("a8m")))
		query, err := b.SQL()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO users (id, name) VALUES ('1', 'a8m')", query)
	})

	t.Run("Batch", func(t *testing.T) {
		d := Postgres
		b := d.InsertInto("users")
		b.Field("name")
		for _, name := range []string{"a", "b"} {
			b.Values(d.Quote(String(name)))
		}
		b.Returning("id")
		query, err := b.SQL()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO users (name) VALUES ('a'), ('b') RETURNING id", query)
		assert.Equal(t, 2, b.Rows())
		assert.Equal(t, 1, strings.Count(query, "INSERT INTO"))
		assert.Equal(t, 1, strings.Count(query, "(name)"))
	})

	t.Run("ReservedWordColumn", func(t *testing.T) {
		b := SQLite.InsertInto("events")
		b.Field("type")
		b.Values(SQLite.Quote("click"))
		query, err := b.SQL()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO events (type) VALUES ('click')", query)
	})

	t.Run("QuotedIdentifiers", func(t *testing.T) {
		b := MySQL.InsertInto("order items")
		b.Field("unit price")
		b.Values(MySQL.Quote("1.5"))
		query, err := b.SQL()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO `order items` (`unit price`) VALUES ('1.5')", query)
	})

	t.Run("DollarInValue", func(t *testing.T) {
		d := Postgres
		b := d.InsertInto("prices")
		b.Field("label")
		b.Values(d.Quote(String("$1 and $$")))
		query, err := b.SQL()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO prices (label) VALUES ('$1 and $$')", query)
	})

	t.Run("SQLiteReturning", func(t *testing.T) {
		d := SQLite
		b := d.InsertInto("items")
		b.Field("payload")
		b.Values(d.Blob([]byte{0x00, 0x01}))
		b.Returning("id")
		query, err := b.SQL()
		require.NoError(t, err)
		assert.Equal(t, "INSERT INTO items (payload) VALUES (X'0001') RETURNING id", query)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := Postgres.InsertInto("").SQL()
		assert.ErrorContains(t, err, "missing table name")

		_, err = Postgres.InsertInto("users").SQL()
		assert.ErrorContains(t, err, "no fields")

		_, err = Postgres.InsertInto("users").Field("name").SQL()
		assert.ErrorContains(t, err, "no values")

		_, err = Postgres.InsertInto("users").Field("name").Values("'a'", "'b'").SQL()
		assert.ErrorContains(t, err, "row 0 has 2 values, expected 1")

		_, err = MySQL.InsertInto("users").Field("name").Values("'a'").Returning("id").SQL()
		assert.ErrorContains(t, err, "RETURNING is not supported by mysql")
	})
}

func TestDialectQuote(t *testing.T) {
	assert.Equal(t, "'it''s'", Postgres.Quote("it's"))
	assert.Equal(t, `'C:\dir'`, Postgres.Quote(`C:\dir`))
	assert.Equal(t, `'C:\\dir'`, MySQL.Quote(`C:\dir`))
	assert.Equal(t, "'it''s'", SQLite.Quote("it's"))
}

func TestDialectBytes(t *testing.T) {
	assert.Equal(t, `\x6869`, Postgres.Bytes([]byte("hi")))
	assert.Equal(t, `\x00ff`, SQLite.Bytes([]byte{0x00, 0xff}))
}

func TestDialectBlob(t *testing.T) {
	b := []byte{0x00, 0x27, 0xff}
	assert.Equal(t, `'\x0027ff'`, Postgres.Blob(b))
	assert.Equal(t, "X'0027ff'", MySQL.Blob(b))
	assert.Equal(t, "X'0027ff'", SQLite.Blob(b))
	assert.Equal(t, "X''", SQLite.Blob(nil))
}

func TestDialectTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 6, 500000000, time.FixedZone("", 2*60*60))
	assert.Equal(t, "2024-03-09 14:05:06.5+02:00", Postgres.Time(ts))
	assert.Equal(t, "2024-03-09 14:05:06.5", MySQL.Time(ts))
	assert.Equal(t, "2024-03-09 14:05:06+00:00", SQLite.Time(time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)))
}
