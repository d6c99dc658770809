package compiler

import "github.com/modelgate/modelgate/core/schema"

// FieldShape describes one input field for the request-validation
// collaborator: its type, whether it must be present on create, and the
// rules to enforce.
type FieldShape struct {
	Type     schema.FieldType `json:"type"`
	Required bool             `json:"required,omitempty"`
	Rules    []schema.Rule    `json:"rules,omitempty"`
}

// InputShape maps field names to their shapes for one model.
type InputShape map[string]FieldShape

// InputShape derives the input shape for the named model. Computed fields
// are derived rather than supplied, synthesized lifecycle fields are
// storage-managed, and auto-increment keys are assigned by the store, so
// none of them appear as inputs.
func (a *Artifact) InputShape(model string) (InputShape, bool) {
	m, ok := a.Model(model)
	if !ok {
		return nil, false
	}

	shape := make(InputShape, len(m.Fields))
	for _, f := range m.Fields {
		if f.Computed != "" || f.Synthesized || f.AutoIncrement {
			continue
		}
		shape[f.Name] = FieldShape{
			Type:     f.Type,
			Required: f.Required,
			Rules:    f.Rules,
		}
	}
	return shape, true
}

// InputShapes derives input shapes for every compiled model.
func (a *Artifact) InputShapes() map[string]InputShape {
	out := make(map[string]InputShape, len(a.Models))
	for _, m := range a.Models {
		shape, _ := a.InputShape(m.Name)
		out[m.Name] = shape
	}
	return out
}
