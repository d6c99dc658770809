package schema

// Field defines a typed attribute of a model.
type Field struct {
	// Name is the field name, unique within the model.
	Name string `yaml:"name" json:"name"`

	// Type is the semantic field type. See FieldType constants.
	Type FieldType `yaml:"type" json:"type"`

	// Required indicates this field must be provided on create.
	Required bool `yaml:"required,omitempty" json:"required,omitempty"`

	// Unique indicates this field must have unique values.
	Unique bool `yaml:"unique,omitempty" json:"unique,omitempty"`

	// PrimaryKey marks this field as the model's primary key. A field marked
	// primary key is implicitly required and unique.
	PrimaryKey bool `yaml:"primary_key,omitempty" json:"primary_key,omitempty"`

	// AutoIncrement requests storage-assigned values. Only legal on a sole,
	// non-composite integer primary key.
	AutoIncrement bool `yaml:"auto_increment,omitempty" json:"auto_increment,omitempty"`

	// Default value for this field.
	Default any `yaml:"default,omitempty" json:"default,omitempty"`

	// Computed holds an expression for derived, non-stored fields. The
	// expression is syntax-checked at validation time; evaluation belongs
	// to collaborators.
	Computed string `yaml:"computed,omitempty" json:"computed,omitempty"`

	// Rules are the validation rules attached to this field, in order.
	Rules []Rule `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// FieldType is the semantic type of a field. The set is closed; the
// validators reject anything else before registration.
type FieldType string

const (
	FieldTypeInteger  FieldType = "integer"
	FieldTypeString   FieldType = "string"
	FieldTypeText     FieldType = "text"
	FieldTypeBoolean  FieldType = "boolean"
	FieldTypeDate     FieldType = "date"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeJSON     FieldType = "json"
)

// FieldTypes lists every recognized field type in canonical order.
var FieldTypes = []FieldType{
	FieldTypeInteger,
	FieldTypeString,
	FieldTypeText,
	FieldTypeBoolean,
	FieldTypeDate,
	FieldTypeDatetime,
	FieldTypeJSON,
}

// Valid reports whether t is one of the recognized field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeInteger, FieldTypeString, FieldTypeText, FieldTypeBoolean,
		FieldTypeDate, FieldTypeDatetime, FieldTypeJSON:
		return true
	}
	return false
}

// IsRequired reports the effective required flag: primary-key fields are
// implicitly required.
func (f Field) IsRequired() bool {
	return f.Required || f.PrimaryKey
}

// IsUnique reports the effective unique flag: primary-key fields are
// implicitly unique.
func (f Field) IsUnique() bool {
	return f.Unique || f.PrimaryKey
}

// IsComputed reports whether the field is derived rather than stored.
func (f Field) IsComputed() bool {
	return f.Computed != ""
}

// SQLType returns the SQLite column type for this field.
func (f Field) SQLType() string {
	switch f.Type {
	case FieldTypeInteger, FieldTypeBoolean:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func (f Field) clone() Field {
	out := f
	if f.Rules != nil {
		out.Rules = make([]Rule, len(f.Rules))
		copy(out.Rules, f.Rules)
	}
	return out
}
