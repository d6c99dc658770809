package schema

// Operation is a model operation governed by access policy.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpCount  Operation = "count"
)

// Operations lists every operation in canonical order. The policy compiler
// emits a row for each, whether or not the model's policy mentions it.
var Operations = []Operation{OpCreate, OpRead, OpUpdate, OpDelete, OpCount}

// Valid reports whether op is a recognized operation.
func (op Operation) Valid() bool {
	switch op {
	case OpCreate, OpRead, OpUpdate, OpDelete, OpCount:
		return true
	}
	return false
}

// AccessPolicy maps operations to the role names allowed to perform them.
// There is no inheritance between roles; an operation absent from the map
// is denied to every role (closed world).
type AccessPolicy map[Operation][]string

// OwnershipRule declares a row-level owner filter attached to a model's
// access policy. The compiler turns it into a filter descriptor for the
// authorization collaborator; nothing is enforced here.
type OwnershipRule struct {
	// Field names the owner field. It must reference an existing field on
	// the same model.
	Field string `yaml:"field" json:"field"`

	// AutoFilter requests automatic owner filtering on reads.
	AutoFilter bool `yaml:"auto_filter,omitempty" json:"auto_filter,omitempty"`

	// Operations is the subset of operations the filter applies to.
	// Operations outside this list are governed purely by the role table.
	Operations []Operation `yaml:"operations,omitempty" json:"operations,omitempty"`

	// AdminBypass marks that the "admin" role skips the filter.
	AdminBypass bool `yaml:"admin_bypass,omitempty" json:"admin_bypass,omitempty"`
}
