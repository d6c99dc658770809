package schema

import (
	"fmt"
	"regexp"
)

// Rule defines a validation rule for a field. Rules are purely descriptive
// at this layer; the request-validation collaborator enforces them.
type Rule struct {
	// Kind is the rule variant. See RuleKind constants.
	Kind RuleKind `yaml:"kind" json:"kind"`

	// MaxLength is the length bound for max_length rules.
	MaxLength int `yaml:"max_length,omitempty" json:"max_length,omitempty"`

	// Pattern is the regular expression for pattern rules.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Message is the custom error message (optional).
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// RuleKind identifies the rule variant.
type RuleKind string

const (
	RuleRequired  RuleKind = "required"
	RuleMaxLength RuleKind = "max_length"
	RulePattern   RuleKind = "pattern"
	RuleEmail     RuleKind = "email"
	RuleURL       RuleKind = "url"
)

// Valid reports whether k is a recognized rule kind.
func (k RuleKind) Valid() bool {
	switch k {
	case RuleRequired, RuleMaxLength, RulePattern, RuleEmail, RuleURL:
		return true
	}
	return false
}

// check verifies the rule is structurally well-formed. The switch is
// exhaustive over RuleKind so new variants fail loudly here.
func (r Rule) check() error {
	switch r.Kind {
	case RuleRequired, RuleEmail, RuleURL:
		return nil
	case RuleMaxLength:
		if r.MaxLength < 0 {
			return fmt.Errorf("max_length must be non-negative, got %d", r.MaxLength)
		}
		return nil
	case RulePattern:
		if r.Pattern == "" {
			return fmt.Errorf("pattern rule requires a pattern")
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("pattern does not compile: %v", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
}
