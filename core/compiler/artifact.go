package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/modelgate/modelgate/core/policy"
	"github.com/modelgate/modelgate/core/resolver"
	"github.com/modelgate/modelgate/core/schema"
)

// Artifact is the compiled schema: the deterministic, validated output
// consumed by the storage, request-validation, and authorization
// collaborators. Its shape is a wire contract and must stay stable and
// diffable across compiles of the same model set.
type Artifact struct {
	// Models holds the per-model records, sorted by model name.
	Models []CompiledModel `json:"models"`

	// Graph is the resolved relation graph.
	Graph *resolver.Graph `json:"graph"`

	// Checksum is the hex sha256 of the canonical encoding of Models and
	// Graph. Two processes that load the same model set in any order
	// produce the same checksum.
	Checksum string `json:"checksum"`
}

// CompiledModel is the per-model record of the artifact.
type CompiledModel struct {
	Name       string             `json:"name"`
	Module     string             `json:"module,omitempty"`
	Table      string             `json:"table"`
	Persisted  bool               `json:"persisted"`
	Fields     []CompiledField    `json:"fields"`
	PrimaryKey []string           `json:"primary_key"`
	Relations  []CompiledRelation `json:"relations,omitempty"`
	Access     policy.Table       `json:"access"`
	Ownership  *policy.Filter     `json:"ownership,omitempty"`
}

// Field returns the named compiled field and whether it exists.
func (m CompiledModel) Field(name string) (CompiledField, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return CompiledField{}, false
}

// CompiledField is a field with implicit flags resolved: primary-key fields
// come out required and unique, synthesized lifecycle fields are marked.
type CompiledField struct {
	Name          string           `json:"name"`
	Type          schema.FieldType `json:"type"`
	Required      bool             `json:"required,omitempty"`
	Unique        bool             `json:"unique,omitempty"`
	PrimaryKey    bool             `json:"primary_key,omitempty"`
	AutoIncrement bool             `json:"auto_increment,omitempty"`
	Default       any              `json:"default,omitempty"`
	Computed      string           `json:"computed,omitempty"`
	Synthesized   bool             `json:"synthesized,omitempty"`
	Rules         []schema.Rule    `json:"rules,omitempty"`
}

// CompiledRelation is a relation with its target verified against the
// registry.
type CompiledRelation struct {
	Name       string              `json:"name"`
	Kind       schema.RelationKind `json:"kind"`
	Target     string              `json:"target"`
	ForeignKey string              `json:"foreign_key,omitempty"`
	Inverse    string              `json:"inverse,omitempty"`
}

// Model returns the named compiled record and whether it exists.
func (a *Artifact) Model(name string) (CompiledModel, bool) {
	for _, m := range a.Models {
		if m.Name == name {
			return m, true
		}
	}
	return CompiledModel{}, false
}

// Encode renders the artifact as indented JSON, the on-disk interchange
// form handed to collaborators.
func (a *Artifact) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return append(out, '\n'), nil
}

// checksum computes the content hash over everything except the checksum
// itself. Struct field order is fixed and Go marshals map keys sorted, so
// the encoding is canonical.
func checksum(models []CompiledModel, graph *resolver.Graph) (string, error) {
	payload := struct {
		Models []CompiledModel `json:"models"`
		Graph  *resolver.Graph `json:"graph"`
	}{models, graph}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
