package compiler

import "github.com/modelgate/modelgate/core/schema"

// Lifecycle field names synthesized from model config.
const (
	fieldCreatedAt = "createdAt"
	fieldUpdatedAt = "updatedAt"
	fieldDeletedAt = "deletedAt"
)

// synthesize applies config synthesis to a persisted model: timestamps adds
// createdAt/updatedAt (datetime, required, storage-managed so no default is
// exposed), soft delete adds a nullable deletedAt. Synthesized fields are
// appended after the author-declared ones, which never get replaced, so
// repeated compilation of the same model yields identical output.
//
// The returned set names the fields this call added.
func synthesize(m *schema.Model) map[string]bool {
	if !m.IsPersisted() {
		return nil
	}

	added := make(map[string]bool)

	if m.Config.Timestamps {
		for _, name := range []string{fieldCreatedAt, fieldUpdatedAt} {
			if _, ok := m.Field(name); ok {
				continue
			}
			m.Fields = append(m.Fields, schema.Field{
				Name:     name,
				Type:     schema.FieldTypeDatetime,
				Required: true,
			})
			added[name] = true
		}
	}

	if m.Config.SoftDelete {
		if _, ok := m.Field(fieldDeletedAt); !ok {
			m.Fields = append(m.Fields, schema.Field{
				Name: fieldDeletedAt,
				Type: schema.FieldTypeDatetime,
			})
			added[fieldDeletedAt] = true
		}
	}

	return added
}
