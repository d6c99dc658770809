package schema

// Relation defines a typed edge between two models.
//
// Relations are only shallowly checked at registration time (kind, name,
// required attributes). Cross-model correctness — whether the target exists,
// whether the foreign key names a real field — is deferred to compile time,
// because the target may be declared by a different, independently loaded
// module with no ordering guarantee between them.
type Relation struct {
	// Name identifies the relation, unique within the model.
	Name string `yaml:"name" json:"name"`

	// Kind is the relation kind: belongs_to or has_many.
	Kind RelationKind `yaml:"kind" json:"kind"`

	// Target is the name of the related model.
	Target string `yaml:"target" json:"target"`

	// ForeignKey names the field holding the reference. Required for
	// belongs_to, where it must name a field on the owning model.
	ForeignKey string `yaml:"foreign_key,omitempty" json:"foreign_key,omitempty"`

	// Inverse names the symmetric relation on the target model. When set,
	// the compiler verifies it exists and agrees in kind and target.
	Inverse string `yaml:"inverse,omitempty" json:"inverse,omitempty"`
}

// RelationKind identifies the kind of a relation.
type RelationKind string

const (
	RelationBelongsTo RelationKind = "belongs_to"
	RelationHasMany   RelationKind = "has_many"
)

// Valid reports whether k is a recognized relation kind.
func (k RelationKind) Valid() bool {
	return k == RelationBelongsTo || k == RelationHasMany
}

// InverseKind returns the complementary kind for inverse checking:
// belongs_to pairs with has_many and vice versa.
func (k RelationKind) InverseKind() RelationKind {
	if k == RelationBelongsTo {
		return RelationHasMany
	}
	return RelationBelongsTo
}
