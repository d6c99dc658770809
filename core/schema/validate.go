package schema

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ValidateField validates a single field declaration in isolation.
// Name uniqueness is the model validator's job; everything local to the
// field is checked here. compositeKey reports whether the owning model
// declares a composite primary key, which outlaws auto_increment.
func ValidateField(model string, f Field, compositeKey bool) error {
	if f.Name == "" {
		return InvalidFieldError{Model: model, Field: f.Name, Reason: "field name must not be empty"}
	}

	if !f.Type.Valid() {
		return InvalidFieldError{
			Model: model, Field: f.Name,
			Reason: fmt.Sprintf("unknown field type %q", f.Type),
		}
	}

	if f.AutoIncrement {
		switch {
		case !f.PrimaryKey:
			return InvalidFieldError{Model: model, Field: f.Name,
				Reason: "auto_increment requires primary_key"}
		case f.Type != FieldTypeInteger:
			return InvalidFieldError{Model: model, Field: f.Name,
				Reason: fmt.Sprintf("auto_increment requires type integer, got %q", f.Type)}
		case compositeKey:
			return InvalidFieldError{Model: model, Field: f.Name,
				Reason: "auto_increment is not allowed with a composite primary key"}
		}
	}

	if f.IsComputed() {
		if f.PrimaryKey {
			return InvalidFieldError{Model: model, Field: f.Name,
				Reason: "computed fields cannot be primary keys"}
		}
		if f.Default != nil {
			return InvalidFieldError{Model: model, Field: f.Name,
				Reason: "computed fields cannot carry defaults"}
		}
		if _, err := expr.Compile(f.Computed, expr.AllowUndefinedVariables()); err != nil {
			return InvalidFieldError{Model: model, Field: f.Name,
				Reason: fmt.Sprintf("computed expression does not compile: %v", err)}
		}
	}

	for i, r := range f.Rules {
		if err := r.check(); err != nil {
			return InvalidFieldError{Model: model, Field: f.Name,
				Reason: fmt.Sprintf("rule %d: %v", i, err)}
		}
	}

	return nil
}

// ValidateModel validates a model declaration as a unit: every field, field
// name uniqueness, the primary-key invariant, relations, access policy, and
// ownership. It fails on the first violated invariant; registration never
// partially applies a bad model.
func ValidateModel(m Model) error {
	if m.Name == "" {
		return InvalidModelError{Model: m.Name, Reason: "model name must not be empty"}
	}
	if len(m.Fields) == 0 {
		return InvalidModelError{Model: m.Name, Reason: "model must declare at least one field"}
	}

	composite := len(m.PrimaryKey) > 0

	seen := make(map[string]bool, len(m.Fields))
	for _, f := range m.Fields {
		if err := ValidateField(m.Name, f, composite); err != nil {
			return err
		}
		if seen[f.Name] {
			return InvalidModelError{Model: m.Name,
				Reason: fmt.Sprintf("duplicate field name %q", f.Name)}
		}
		seen[f.Name] = true
	}

	if err := validatePrimaryKey(m, seen); err != nil {
		return err
	}

	if err := validateRelations(m); err != nil {
		return err
	}

	for op := range m.Access {
		if !op.Valid() {
			return InvalidModelError{Model: m.Name,
				Reason: fmt.Sprintf("access policy references unknown operation %q", op)}
		}
	}

	if m.Ownership != nil {
		if m.Ownership.Field == "" {
			return InvalidModelError{Model: m.Name, Reason: "ownership rule requires a field"}
		}
		if !seen[m.Ownership.Field] {
			return OwnershipFieldMissingError{Model: m.Name, Field: m.Ownership.Field}
		}
		for _, op := range m.Ownership.Operations {
			if !op.Valid() {
				return InvalidModelError{Model: m.Name,
					Reason: fmt.Sprintf("ownership rule references unknown operation %q", op)}
			}
		}
	}

	return nil
}

// validatePrimaryKey enforces the exactly-one-primary-key invariant:
// either a single field marked primary_key, or an explicit composite list
// referencing at least two existing fields, never both.
func validatePrimaryKey(m Model, fields map[string]bool) error {
	var marked []string
	for _, f := range m.Fields {
		if f.PrimaryKey {
			marked = append(marked, f.Name)
		}
	}

	if len(m.PrimaryKey) > 0 {
		if len(marked) > 0 {
			return CompositeKeyError{Model: m.Name,
				Reason: fmt.Sprintf("composite key conflicts with field %q marked primary_key", marked[0])}
		}
		if len(m.PrimaryKey) < 2 {
			return CompositeKeyError{Model: m.Name,
				Reason: "composite key must reference at least two fields"}
		}
		seen := make(map[string]bool, len(m.PrimaryKey))
		for _, name := range m.PrimaryKey {
			if !fields[name] {
				return CompositeKeyError{Model: m.Name, Field: name,
					Reason: "references a field that does not exist"}
			}
			if seen[name] {
				return CompositeKeyError{Model: m.Name, Field: name,
					Reason: "listed more than once"}
			}
			seen[name] = true
		}
		return nil
	}

	switch len(marked) {
	case 0:
		return InvalidModelError{Model: m.Name, Reason: "model declares no primary key"}
	case 1:
		return nil
	default:
		return InvalidModelError{Model: m.Name,
			Reason: fmt.Sprintf("multiple fields marked primary_key: %q and %q", marked[0], marked[1])}
	}
}

// validateRelations shallow-checks relation declarations. Target existence
// and foreign-key resolution are compile-time concerns.
func validateRelations(m Model) error {
	seen := make(map[string]bool, len(m.Relations))
	for _, r := range m.Relations {
		if r.Name == "" {
			return InvalidModelError{Model: m.Name, Reason: "relation name must not be empty"}
		}
		if seen[r.Name] {
			return InvalidModelError{Model: m.Name,
				Reason: fmt.Sprintf("duplicate relation name %q", r.Name)}
		}
		seen[r.Name] = true

		if !r.Kind.Valid() {
			return InvalidModelError{Model: m.Name,
				Reason: fmt.Sprintf("relation %q: unknown kind %q", r.Name, r.Kind)}
		}
		if r.Target == "" {
			return InvalidModelError{Model: m.Name,
				Reason: fmt.Sprintf("relation %q: target must not be empty", r.Name)}
		}
		if r.Kind == RelationBelongsTo && r.ForeignKey == "" {
			return InvalidModelError{Model: m.Name,
				Reason: fmt.Sprintf("relation %q: belongs_to requires a foreign_key", r.Name)}
		}
	}
	return nil
}
