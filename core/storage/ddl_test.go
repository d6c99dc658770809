package storage

import (
	"strings"
	"testing"

	"github.com/modelgate/modelgate/core/compiler"
	"github.com/modelgate/modelgate/core/registry"
	"github.com/modelgate/modelgate/core/schema"
)

func compile(t *testing.T, models ...schema.Model) *compiler.Artifact {
	t.Helper()
	reg := registry.New()
	for _, m := range models {
		if err := reg.Register(m); err != nil {
			t.Fatalf("Register(%s): %v", m.Name, err)
		}
	}
	reg.Seal()

	artifact, err := compiler.New(reg).Compile()
	if err != nil {
		t.Fatalf("Compile(): %v", err)
	}
	return artifact
}

func TestBuildCreateTableSQL(t *testing.T) {
	artifact := compile(t, schema.Model{
		Name: "user",
		Fields: []schema.Field{
			{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true, AutoIncrement: true},
			{Name: "email", Type: schema.FieldTypeString, Required: true, Unique: true},
			{Name: "active", Type: schema.FieldTypeBoolean, Default: true},
			{Name: "plan", Type: schema.FieldTypeString, Default: "free"},
			{Name: "displayName", Type: schema.FieldTypeString, Computed: "email"},
		},
	})

	m, _ := artifact.Model("user")
	sql := BuildCreateTableSQL(m)

	wantLines := []string{
		"CREATE TABLE IF NOT EXISTS user (",
		"id INTEGER PRIMARY KEY AUTOINCREMENT",
		"email TEXT NOT NULL",
		"active INTEGER DEFAULT 1",
		"plan TEXT DEFAULT 'free'",
		"UNIQUE(email)",
	}
	for _, want := range wantLines {
		if !strings.Contains(sql, want) {
			t.Errorf("SQL missing %q:\n%s", want, sql)
		}
	}

	if strings.Contains(sql, "displayName") {
		t.Errorf("computed field appears in DDL:\n%s", sql)
	}
}

func TestBuildCreateTableSQL_CompositeKey(t *testing.T) {
	artifact := compile(t, schema.Model{
		Name:       "membership",
		Table:      "memberships",
		PrimaryKey: []string{"userId", "teamId"},
		Fields: []schema.Field{
			{Name: "userId", Type: schema.FieldTypeInteger, Required: true},
			{Name: "teamId", Type: schema.FieldTypeInteger, Required: true},
			{Name: "role", Type: schema.FieldTypeString},
		},
	})

	m, _ := artifact.Model("membership")
	sql := BuildCreateTableSQL(m)

	if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS memberships (") {
		t.Errorf("SQL should use the declared table name:\n%s", sql)
	}
	if !strings.Contains(sql, "PRIMARY KEY (userId, teamId)") {
		t.Errorf("SQL missing composite key constraint:\n%s", sql)
	}
	if strings.Contains(sql, "AUTOINCREMENT") {
		t.Errorf("composite key table must not autoincrement:\n%s", sql)
	}
}

func TestBuildCreateTableSQL_ForeignKeys(t *testing.T) {
	artifact := compile(t,
		schema.Model{
			Name: "user",
			Fields: []schema.Field{
				{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true, AutoIncrement: true},
			},
		},
		schema.Model{
			Name: "post",
			Fields: []schema.Field{
				{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true, AutoIncrement: true},
				{Name: "authorId", Type: schema.FieldTypeInteger, Required: true},
			},
			Relations: []schema.Relation{
				{Name: "author", Kind: schema.RelationBelongsTo, Target: "user", ForeignKey: "authorId"},
			},
		},
	)

	m, _ := artifact.Model("post")
	sql := BuildCreateTableSQL(m)
	if !strings.Contains(sql, "FOREIGN KEY(authorId) REFERENCES user(id)") {
		t.Errorf("SQL missing foreign key constraint:\n%s", sql)
	}
}

func TestBuildCreateTableSQL_SynthesizedTimestamps(t *testing.T) {
	artifact := compile(t, schema.Model{
		Name: "note",
		Fields: []schema.Field{
			{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true, AutoIncrement: true},
		},
		Config: schema.Config{Timestamps: true, SoftDelete: true},
	})

	m, _ := artifact.Model("note")
	sql := BuildCreateTableSQL(m)

	for _, want := range []string{
		"createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP",
		"updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("SQL missing %q:\n%s", want, sql)
		}
	}

	// deletedAt is nullable and storage does not assign it.
	if !strings.Contains(sql, "deletedAt TEXT") {
		t.Errorf("SQL missing deletedAt column:\n%s", sql)
	}
	if strings.Contains(sql, "deletedAt TEXT NOT NULL") ||
		strings.Contains(sql, "deletedAt TEXT DEFAULT") {
		t.Errorf("deletedAt must be nullable with no default:\n%s", sql)
	}
}

func TestBuildIndexSQL(t *testing.T) {
	artifact := compile(t, schema.Model{
		Name: "user",
		Fields: []schema.Field{
			{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true, AutoIncrement: true},
			{Name: "email", Type: schema.FieldTypeString, Unique: true},
			{Name: "handle", Type: schema.FieldTypeString, Unique: true},
			{Name: "bio", Type: schema.FieldTypeText},
		},
	})

	m, _ := artifact.Model("user")
	indexes := BuildIndexSQL(m)
	if len(indexes) != 2 {
		t.Fatalf("len(indexes) = %d, want 2: %v", len(indexes), indexes)
	}
	if indexes[0] != "CREATE UNIQUE INDEX IF NOT EXISTS idx_user_email ON user(email)" {
		t.Errorf("indexes[0] = %q", indexes[0])
	}
}

func TestBuildSchemaSQL(t *testing.T) {
	persisted := false
	artifact := compile(t,
		schema.Model{
			Name: "user",
			Fields: []schema.Field{
				{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true, AutoIncrement: true},
				{Name: "email", Type: schema.FieldTypeString, Unique: true},
			},
		},
		schema.Model{
			Name:      "searchQuery",
			Persisted: &persisted,
			Fields: []schema.Field{
				{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true},
			},
		},
	)

	sql := BuildSchemaSQL(artifact)

	if !strings.Contains(sql, "CREATE TABLE IF NOT EXISTS user") {
		t.Errorf("schema missing user table:\n%s", sql)
	}
	if !strings.Contains(sql, "idx_user_email") {
		t.Errorf("schema missing unique index:\n%s", sql)
	}
	if strings.Contains(sql, "searchQuery") {
		t.Errorf("non-persisted model leaked into DDL:\n%s", sql)
	}
	if !strings.HasSuffix(sql, ";\n") {
		t.Errorf("schema should end with a terminated statement:\n%s", sql)
	}
}
