package schema

import (
	"os"
	"path/filepath"
	"testing"
)

const userYAML = `model: user
config:
  timestamps: true
fields:
  - name: id
    type: integer
    primary_key: true
    auto_increment: true
  - name: email
    type: string
    required: true
    unique: true
    rules:
      - kind: email
  - name: name
    type: string
    rules:
      - kind: max_length
        max_length: 100
relations:
  - name: posts
    kind: has_many
    target: post
access:
  read: [admin, user]
  create: [admin]
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(userYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Name != "user" {
		t.Errorf("Name = %q, want user", m.Name)
	}
	if len(m.Fields) != 3 {
		t.Fatalf("len(Fields) = %d, want 3", len(m.Fields))
	}
	if !m.Fields[0].AutoIncrement {
		t.Error("id field should be auto_increment")
	}
	if m.Fields[2].Rules[0].MaxLength != 100 {
		t.Errorf("max_length = %d, want 100", m.Fields[2].Rules[0].MaxLength)
	}
	if !m.Config.Timestamps {
		t.Error("timestamps config not parsed")
	}
	if got := m.Access[OpRead]; len(got) != 2 {
		t.Errorf("Access[read] = %v, want two roles", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "model: [unclosed"},
		{"fails validation", "model: ghost\nfields:\n  - name: x\n    type: float\n"},
		{"no primary key", "model: ghost\nfields:\n  - name: x\n    type: string\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() error = nil, want error")
			}
		})
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("zebra.yaml", "model: zebra\nfields:\n  - {name: id, type: integer, primary_key: true}\n")
	write("alpha.yml", "model: alpha\nfields:\n  - {name: id, type: integer, primary_key: true}\n")
	write("nested/deep.yaml", "model: deep\nfields:\n  - {name: id, type: integer, primary_key: true}\n")
	write("README.md", "not a model")

	models, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir() error = %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("len(models) = %d, want 3", len(models))
	}

	// Lexical order: alpha.yml, nested/deep.yaml, zebra.yaml.
	want := []string{"alpha", "deep", "zebra"}
	for i, name := range want {
		if models[i].Name != name {
			t.Errorf("models[%d].Name = %q, want %q", i, models[i].Name, name)
		}
	}
}

func TestParseDir_Missing(t *testing.T) {
	if _, err := ParseDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ParseDir() error = nil, want error")
	}
}

func TestParseFile_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("model: bad\nfields: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(path); err == nil {
		t.Error("ParseFile() error = nil, want error")
	}
}
