package commands

import (
	"bytes"
	"context"
	stdsql "database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dbgen/compiler/gen"
)

// setup creates a SQLite database and a configuration file pointing at it.
func setup(t *testing.T, extra string) (dir, config string) {
	t.Helper()
	dir = t.TempDir()
	dbPath := filepath.Join(dir, "app.db")
	db, err := stdsql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, email TEXT);
		CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER NOT NULL, total NUMERIC(10,2));
		CREATE VIEW user_emails AS SELECT id, email FROM users;
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	config = filepath.Join(dir, "dbgen.yaml")
	data := "dialect: sqlite\ndsn: " + dbPath + "\ntarget: " + filepath.Join(dir, "models") + "\n" + extra
	require.NoError(t, os.WriteFile(config, []byte(data), 0o644))
	return dir, config
}

func run(t *testing.T, getenv func(string) string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(getenv)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestTablesCmd(t *testing.T) {
	_, config := setup(t, "")
	out, _, err := run(t, nil, "tables", "-c", config)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Regexp(t, `orders\s+false`, out)
	assert.Regexp(t, `user_emails\s+true`, out)
	assert.Regexp(t, `users\s+false`, out)
}

func TestGenCmd(t *testing.T) {
	t.Run("every base table", func(t *testing.T) {
		dir, config := setup(t, "")
		_, logs, err := run(t, nil, "gen", "--config", config)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "models", "users.go"))
		assert.FileExists(t, filepath.Join(dir, "models", "orders.go"))
		assert.NoFileExists(t, filepath.Join(dir, "models", "user_emails.go"))
		assert.Contains(t, logs, "generated")
	})

	t.Run("tables from arguments", func(t *testing.T) {
		dir, config := setup(t, "tables: [users, orders]\n")
		_, _, err := run(t, nil, "gen", "-c", config, "orders")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "models", "orders.go"))
		assert.NoFileExists(t, filepath.Join(dir, "models", "users.go"))
	})

	t.Run("configured options", func(t *testing.T) {
		dir, config := setup(t, "package: store\nmarkers: [yaml]\ntables: [users]\n")
		_, _, err := run(t, nil, "gen", "-c", config)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "models", "users.go"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "package store")
		assert.Contains(t, string(data), `yaml:"name"`)
		assert.Contains(t, string(data), "// "+gen.DefaultHeader)
	})

	t.Run("verbose logs catalog queries", func(t *testing.T) {
		_, config := setup(t, "tables: [users]\n")
		_, logs, err := run(t, nil, "gen", "-v", "-c", config)
		require.NoError(t, err)
		assert.Contains(t, logs, "level=DEBUG")
		assert.Contains(t, logs, "pragma_table_info")
		assert.Contains(t, logs, "queries=1")
	})

	t.Run("missing table is skipped", func(t *testing.T) {
		dir, config := setup(t, "")
		_, logs, err := run(t, nil, "gen", "-c", config, "ghost")
		require.NoError(t, err)
		assert.Contains(t, logs, "level=WARN")
		assert.NoFileExists(t, filepath.Join(dir, "models", "ghost.go"))
	})
}

func TestDSNFromEnv(t *testing.T) {
	dir, config := setup(t, "")
	// Point the file at a missing database; the environment wins.
	data, err := os.ReadFile(config)
	require.NoError(t, err)
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, bytes.ReplaceAll(data, []byte("app.db"), []byte("missing.db")), 0o644))

	getenv := func(key string) string {
		if key == DSNEnv {
			return filepath.Join(dir, "app.db")
		}
		return ""
	}
	out, _, err := run(t, getenv, "tables", "-c", other)
	require.NoError(t, err)
	assert.Contains(t, out, "users")
}

func TestConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := run(t, nil, "tables", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid mysql dsn", func(t *testing.T) {
		config := filepath.Join(t.TempDir(), "dbgen.yaml")
		require.NoError(t, os.WriteFile(config, []byte("dialect: mysql\ndsn: \"not a dsn\"\n"), 0o644))
		_, _, err := run(t, nil, "tables", "-c", config)
		assert.ErrorContains(t, err, "parse mysql dsn")
	})

	t.Run("mysql dsn without database", func(t *testing.T) {
		config := filepath.Join(t.TempDir(), "dbgen.yaml")
		require.NoError(t, os.WriteFile(config, []byte("dialect: mysql\ndsn: \"root@tcp(localhost:3306)/\"\n"), 0o644))
		_, _, err := run(t, nil, "tables", "-c", config)
		assert.ErrorContains(t, err, "must name a database")
	})

	t.Run("tables takes no arguments", func(t *testing.T) {
		_, config := setup(t, "")
		_, _, err := run(t, nil, "tables", "-c", config, "extra")
		require.Error(t, err)
	})
}
