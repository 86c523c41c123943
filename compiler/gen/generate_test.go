package gen

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/dbgen"
	"github.com/syssam/dbgen/dialect/sql/schema"
)

func TestGenerateModule(t *testing.T) {
	insp := &fakeInspector{columns: map[string][]ColumnInfo{"users": userColumns()}}
	g := newTestGenerator(t, insp)

	info, err := g.GenerateModule(context.Background(), "users", []string{"yaml"}, []string{"User is generated."}, nil)
	require.NoError(t, err)
	assert.Equal(t, "User", info.StructName)
	assert.Equal(t, userColumns(), info.Columns)
	assert.Empty(t, info.UserTypes)

	content := info.Content
	assert.True(t, strings.HasPrefix(content, "// "+DefaultHeader+"\n"))
	assert.Contains(t, content, "package models")
	assert.Contains(t, content, `"github.com/syssam/dbgen/dialect/sql"`)

	order := []string{
		"type User struct",
		"func InsertUserReturningID(",
		"func InsertUser(",
		"func BatchInsertUserReturningIDs(",
		"func BatchInsertUser(",
		"const SelectUserQuery",
		"func SelectUsers(",
		"func SelectUserByID(",
		"func DeleteUserByID(",
	}
	last := -1
	for _, s := range order {
		i := strings.Index(content, s)
		require.NotEqual(t, -1, i, s)
		assert.Greater(t, i, last, s)
		last = i
	}
}

func TestGenerateModuleUserTypes(t *testing.T) {
	insp := &fakeInspector{columns: map[string][]ColumnInfo{"users": {
		col("id", "int8", false),
		col("mood", "mood", false),
	}}}
	g := newTestGenerator(t, insp, WithStringer("github.com/acme/types.Mood", "github.com/acme/types.FormatMood"))
	o, err := NewOverrides(map[string]string{"mood": "github.com/acme/types.Mood"})
	require.NoError(t, err)

	info, err := g.GenerateModule(context.Background(), "users", nil, nil, o)
	require.NoError(t, err)
	assert.Equal(t, map[string]UserType{"mood": {Name: "mood", Expr: "github.com/acme/types.Mood"}}, info.UserTypes)
	assert.Contains(t, info.Content, `"github.com/acme/types"`)
}

func TestGenerateModuleErrors(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		g := newTestGenerator(t, &fakeInspector{})
		_, err := g.GenerateModule(context.Background(), "missing", nil, nil, nil)
		require.Error(t, err)
		assert.True(t, dbgen.IsTableNotFound(err))
	})

	t.Run("connection failure", func(t *testing.T) {
		cause := dbgen.NewConnectionError("postgres", "query columns", errors.New("connection refused"))
		g := newTestGenerator(t, &fakeInspector{err: cause})
		_, err := g.GenerateModule(context.Background(), "users", nil, nil, nil)
		assert.True(t, dbgen.IsConnectionError(err))
	})

	t.Run("unsupported type produces nothing", func(t *testing.T) {
		insp := &fakeInspector{columns: map[string][]ColumnInfo{"users": {col("id", "int8", false), col("mood", "mood", false)}}}
		g := newTestGenerator(t, insp)
		info, err := g.GenerateModule(context.Background(), "users", nil, nil, nil)
		assert.Nil(t, info)
		assert.True(t, dbgen.IsUnsupportedType(err))
	})
}

func TestGenerateFile(t *testing.T) {
	insp := &fakeInspector{columns: map[string][]ColumnInfo{"users": userColumns()}}
	target := t.TempDir()
	g := newTestGenerator(t, insp, WithTarget(target), WithPackage("db"), WithMarkers("yaml"))

	require.NoError(t, g.GenerateFile(context.Background(), "users"))
	data, err := os.ReadFile(filepath.Join(target, "users.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package db")
	assert.Contains(t, squash(string(data)), "ID int64 `db:\"id\" json:\"id\" yaml:\"id\"`")
}

func TestEmptySchemaDivergence(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	target := t.TempDir()
	g := newTestGenerator(t, &fakeInspector{}, WithTarget(target), WithLogger(logger))

	_, err := g.GenerateModule(context.Background(), "ghost", nil, nil, nil)
	assert.True(t, dbgen.IsTableNotFound(err))

	require.NoError(t, g.GenerateFile(context.Background(), "ghost"))
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "table=ghost")
}

func TestGenerateFiles(t *testing.T) {
	insp := &fakeInspector{
		columns: map[string][]ColumnInfo{
			"users":  userColumns(),
			"orders": {col("id", "int8", false), col("total", "numeric(10,2)", false)},
		},
		tables: []schema.TableInfo{
			{Name: "users"},
			{Name: "orders"},
			{Name: "active_users", IsView: true},
		},
	}

	t.Run("explicit tables", func(t *testing.T) {
		target := t.TempDir()
		g := newTestGenerator(t, insp, WithTarget(target), WithWorkers(2))
		require.NoError(t, g.GenerateFiles(context.Background(), "users", "users"))
		assert.FileExists(t, filepath.Join(target, "users.go"))
		assert.NoFileExists(t, filepath.Join(target, "orders.go"))
	})

	t.Run("configured tables", func(t *testing.T) {
		target := t.TempDir()
		g := newTestGenerator(t, insp, WithTarget(target), WithTables("orders"))
		require.NoError(t, g.GenerateFiles(context.Background()))
		assert.FileExists(t, filepath.Join(target, "orders.go"))
		assert.NoFileExists(t, filepath.Join(target, "users.go"))
	})

	t.Run("every base table", func(t *testing.T) {
		target := t.TempDir()
		g := newTestGenerator(t, insp, WithTarget(target))
		require.NoError(t, g.GenerateFiles(context.Background()))
		assert.FileExists(t, filepath.Join(target, "users.go"))
		assert.FileExists(t, filepath.Join(target, "orders.go"))
		assert.NoFileExists(t, filepath.Join(target, "active_users.go"))
	})

	t.Run("first error is returned", func(t *testing.T) {
		bad := &fakeInspector{columns: map[string][]ColumnInfo{"users": {col("mood", "mood", false)}}}
		g := newTestGenerator(t, bad, WithTarget(t.TempDir()))
		err := g.GenerateFiles(context.Background(), "users")
		assert.True(t, dbgen.IsUnsupportedType(err))
	})
}

func TestFileName(t *testing.T) {
	tests := []struct {
		table string
		want  string
	}{
		{"users", "users.go"},
		{"order-items", "order-items.go"},
		{"foo_test", "foo_test_.go"},
		{"events_linux", "events_linux_.go"},
		{"stats_amd64", "stats_amd64_.go"},
		{"linux", "linux.go"},
		{"../etc/passwd", "table___etc_passwd.go"},
		{`a\b`, "a_b.go"},
		{"_hidden", "table_hidden.go"},
		{".profile", "table_profile.go"},
		{"", "table.go"},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.table))
		})
	}
}

func TestGenerateFileName(t *testing.T) {
	insp := &fakeInspector{columns: map[string][]ColumnInfo{
		"foo_test":  userColumns(),
		"../escape": userColumns(),
	}}
	root := t.TempDir()
	target := filepath.Join(root, "models")
	g := newTestGenerator(t, insp, WithTarget(target))

	require.NoError(t, g.GenerateFiles(context.Background(), "foo_test", "../escape"))
	assert.FileExists(t, filepath.Join(target, "foo_test_.go"))
	assert.FileExists(t, filepath.Join(target, "table___escape.go"))
	assert.NoFileExists(t, filepath.Join(root, "escape.go"))
}

func TestNewDefaults(t *testing.T) {
	g := New(&fakeInspector{}, testDialect{}, nil)
	assert.Equal(t, "models", g.Config().Package)
	assert.Positive(t, g.Config().Workers)
	assert.NotNil(t, g.Config().Logger)

	target := t.TempDir()
	insp := &fakeInspector{columns: map[string][]ColumnInfo{"users": userColumns()}}
	g = New(insp, testDialect{}, &Config{Target: target})
	done := make(chan error, 1)
	go func() { done <- g.GenerateFiles(context.Background(), "users", "ghost") }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("GenerateFiles did not return")
	}
	assert.FileExists(t, filepath.Join(target, "users.go"))
	assert.Equal(t, FieldNamingPascal, g.Config().FieldNaming)
}

func TestSections(t *testing.T) {
	g := newTestGenerator(t, &fakeInspector{})

	t.Run("fixed order", func(t *testing.T) {
		sections, err := g.Sections(testTable(t, "users", userColumns()), nil, nil)
		require.NoError(t, err)
		require.Len(t, sections, 8)
		for i, s := range sections {
			assert.Equal(t, SectionKind(i), s.Kind)
			assert.NotEmpty(t, s.Code, s.Kind.String())
		}
	})

	t.Run("empty sections contribute nothing", func(t *testing.T) {
		tbl := testTable(t, "events", []ColumnInfo{col("name", "text", false)})
		sections, err := g.Sections(tbl, nil, nil)
		require.NoError(t, err)
		for _, s := range sections {
			switch s.Kind {
			case SectionInsertReturningID, SectionBatchInsertReturningID, SectionSelectByID, SectionDeleteByID:
				assert.Empty(t, s.Code, s.Kind.String())
			default:
				assert.NotEmpty(t, s.Code, s.Kind.String())
			}
		}

		full, err := g.Render(sections)
		require.NoError(t, err)
		var kept []Section
		for _, s := range sections {
			if len(s.Code) > 0 {
				kept = append(kept, s)
			}
		}
		trimmed, err := g.Render(kept)
		require.NoError(t, err)
		assert.Equal(t, trimmed, full)
		assert.NotContains(t, full, "ReturningID")
		assert.NotContains(t, full, "ByID")
	})
}

func TestSectionKindString(t *testing.T) {
	assert.Equal(t, "struct", SectionStruct.String())
	assert.Equal(t, "delete by id", SectionDeleteByID.String())
	assert.Equal(t, "SectionKind(42)", SectionKind(42).String())
}

func TestRenderWithoutHeader(t *testing.T) {
	g := newTestGenerator(t, &fakeInspector{}, WithHeader(""))
	content, err := g.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "package models\n", content)
}
