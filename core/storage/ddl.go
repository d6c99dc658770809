// Package storage emits the physical schema contract for the storage
// collaborator: CREATE TABLE and CREATE INDEX SQL derived from compiled
// models. Nothing here touches a database; executing the DDL (and running
// migrations) belongs to the collaborator that consumes it.
package storage

import (
	"fmt"
	"strings"

	"github.com/modelgate/modelgate/core/compiler"
	"github.com/modelgate/modelgate/core/schema"
)

// BuildSchemaSQL renders DDL for every persisted model in the artifact,
// in artifact (name) order, separated by blank lines.
func BuildSchemaSQL(a *compiler.Artifact) string {
	var stmts []string
	for _, m := range a.Models {
		if !m.Persisted {
			continue
		}
		stmts = append(stmts, BuildCreateTableSQL(m)+";")
		for _, idx := range BuildIndexSQL(m) {
			stmts = append(stmts, idx+";")
		}
	}
	return strings.Join(stmts, "\n\n") + "\n"
}

// BuildCreateTableSQL generates CREATE TABLE SQL for a compiled model.
// Computed fields are derived, not stored, and are skipped.
func BuildCreateTableSQL(m compiler.CompiledModel) string {
	var columns []string
	var constraints []string

	singleAutoPK := len(m.PrimaryKey) == 1 && hasAutoIncrementPK(m)

	for _, f := range m.Fields {
		if f.Computed != "" {
			continue
		}
		columns = append(columns, buildColumnDef(f, singleAutoPK))

		if f.Unique && !f.PrimaryKey {
			constraints = append(constraints, fmt.Sprintf("UNIQUE(%s)", f.Name))
		}
	}

	if len(m.PrimaryKey) > 1 {
		constraints = append(constraints, fmt.Sprintf(
			"PRIMARY KEY (%s)", strings.Join(m.PrimaryKey, ", "),
		))
	}

	for _, r := range m.Relations {
		if r.Kind != schema.RelationBelongsTo {
			continue
		}
		constraints = append(constraints, fmt.Sprintf(
			"FOREIGN KEY(%s) REFERENCES %s(id)", r.ForeignKey, r.Target,
		))
	}

	sql := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s",
		m.Table,
		strings.Join(columns, ",\n  "),
	)

	if len(constraints) > 0 {
		sql += ",\n  " + strings.Join(constraints, ",\n  ")
	}

	sql += "\n)"

	return sql
}

// BuildIndexSQL generates CREATE INDEX statements for unique fields outside
// the primary key.
func BuildIndexSQL(m compiler.CompiledModel) []string {
	var indexes []string

	for _, f := range m.Fields {
		if f.Computed != "" || f.PrimaryKey || !f.Unique {
			continue
		}
		indexes = append(indexes, fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)",
			m.Table, f.Name, m.Table, f.Name,
		))
	}

	return indexes
}

func hasAutoIncrementPK(m compiler.CompiledModel) bool {
	for _, f := range m.Fields {
		if f.PrimaryKey && f.AutoIncrement {
			return true
		}
	}
	return false
}

// buildColumnDef builds one column definition.
func buildColumnDef(f compiler.CompiledField, singleAutoPK bool) string {
	parts := []string{f.Name, sqlType(f.Type)}

	if f.PrimaryKey && singleAutoPK {
		parts = append(parts, "PRIMARY KEY AUTOINCREMENT")
	} else if f.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}

	if f.Required && !f.PrimaryKey {
		parts = append(parts, "NOT NULL")
	}

	if f.Default != nil {
		if v := formatDefault(f.Default); v != "" {
			parts = append(parts, "DEFAULT "+v)
		}
	}

	// Synthesized timestamps are storage-managed.
	if f.Synthesized && (f.Name == "createdAt" || f.Name == "updatedAt") {
		parts = append(parts, "DEFAULT CURRENT_TIMESTAMP")
	}

	return strings.Join(parts, " ")
}

// sqlType maps semantic field types to SQLite column types.
func sqlType(t schema.FieldType) string {
	switch t {
	case schema.FieldTypeInteger, schema.FieldTypeBoolean:
		return "INTEGER"
	case schema.FieldTypeString, schema.FieldTypeText, schema.FieldTypeDate,
		schema.FieldTypeDatetime, schema.FieldTypeJSON:
		return "TEXT"
	default:
		return "TEXT"
	}
}

// formatDefault formats a default value for SQL.
func formatDefault(val any) string {
	switch v := val.(type) {
	case string:
		return fmt.Sprintf("'%s'", strings.ReplaceAll(v, "'", "''"))
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}
