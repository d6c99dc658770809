package schema

// Model is the root definition for a declarative entity.
// Everything downstream (storage DDL, input shapes, policy tables) is
// derived from this definition at compile time.
type Model struct {
	// Name is the globally unique model name (e.g., "user", "post").
	Name string `yaml:"model" json:"name"`

	// Module names the functional module that owns this model.
	Module string `yaml:"owner,omitempty" json:"module,omitempty"`

	// Table is the storage table name. Defaults to Name when empty.
	Table string `yaml:"table,omitempty" json:"table,omitempty"`

	// Fields is the ordered list of fields owned by this model.
	Fields []Field `yaml:"fields" json:"fields"`

	// Relations lists typed edges to other models.
	Relations []Relation `yaml:"relations,omitempty" json:"relations,omitempty"`

	// PrimaryKey declares an explicit composite primary key by field name.
	// Leave empty when a single field carries primary_key: true.
	PrimaryKey []string `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`

	// Access maps operations to the roles allowed to perform them.
	// Operations absent from the map are denied to every role.
	Access AccessPolicy `yaml:"access,omitempty" json:"access,omitempty"`

	// Ownership declares an optional row-level owner filter.
	Ownership *OwnershipRule `yaml:"ownership,omitempty" json:"ownership,omitempty"`

	// Config holds lifecycle flags (timestamps, soft delete).
	Config Config `yaml:"config,omitempty" json:"config,omitempty"`

	// Persisted marks whether the model participates in physical storage
	// schema emission. Defaults to true; validation-only models set false.
	Persisted *bool `yaml:"persisted,omitempty" json:"persisted,omitempty"`
}

// Config holds per-model lifecycle configuration.
type Config struct {
	// Timestamps requests createdAt/updatedAt fields. If the model does not
	// declare them they are synthesized at compile time (datetime, required,
	// no caller-visible default; the storage collaborator manages values).
	Timestamps bool `yaml:"timestamps,omitempty" json:"timestamps,omitempty"`

	// SoftDelete requests a nullable deletedAt field, synthesized at
	// compile time when absent.
	SoftDelete bool `yaml:"soft_delete,omitempty" json:"soft_delete,omitempty"`
}

// IsPersisted reports whether the model takes part in storage schema emission.
func (m Model) IsPersisted() bool {
	if m.Persisted != nil {
		return *m.Persisted
	}
	return true
}

// TableName returns the storage table name, defaulting to the model name.
func (m Model) TableName() string {
	if m.Table != "" {
		return m.Table
	}
	return m.Name
}

// Field returns the named field and whether it exists.
func (m Model) Field(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Relation returns the named relation and whether it exists.
func (m Model) Relation(name string) (Relation, bool) {
	for _, r := range m.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// PrimaryKeyFields returns the effective primary key as ordered field names:
// the explicit composite list when declared, otherwise the single field
// marked primary_key. Assumes the model has passed validation.
func (m Model) PrimaryKeyFields() []string {
	if len(m.PrimaryKey) > 0 {
		out := make([]string, len(m.PrimaryKey))
		copy(out, m.PrimaryKey)
		return out
	}
	for _, f := range m.Fields {
		if f.PrimaryKey {
			return []string{f.Name}
		}
	}
	return nil
}

// Clone returns a deep copy of the model. The registry stores and hands out
// clones so that callers can never mutate registered state.
func (m Model) Clone() Model {
	out := m

	if m.Fields != nil {
		out.Fields = make([]Field, len(m.Fields))
		for i, f := range m.Fields {
			out.Fields[i] = f.clone()
		}
	}

	if m.Relations != nil {
		out.Relations = make([]Relation, len(m.Relations))
		copy(out.Relations, m.Relations)
	}

	if m.PrimaryKey != nil {
		out.PrimaryKey = make([]string, len(m.PrimaryKey))
		copy(out.PrimaryKey, m.PrimaryKey)
	}

	if m.Access != nil {
		out.Access = make(AccessPolicy, len(m.Access))
		for op, roles := range m.Access {
			rs := make([]string, len(roles))
			copy(rs, roles)
			out.Access[op] = rs
		}
	}

	if m.Ownership != nil {
		o := *m.Ownership
		if m.Ownership.Operations != nil {
			o.Operations = make([]Operation, len(m.Ownership.Operations))
			copy(o.Operations, m.Ownership.Operations)
		}
		out.Ownership = &o
	}

	if m.Persisted != nil {
		p := *m.Persisted
		out.Persisted = &p
	}

	return out
}
