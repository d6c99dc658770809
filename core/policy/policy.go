// Package policy derives complete per-operation, per-role permission tables
// from model access policies. The output is a data contract for the
// authorization collaborator; nothing is enforced here.
package policy

import (
	"sort"

	"github.com/modelgate/modelgate/core/schema"
)

// Table is the compiled (operation × role) allow table for one model.
// Every operation appears as a key. An empty role list means the operation
// is denied to every role: the default is closed-world deny, with no
// implicit inheritance between roles.
type Table map[schema.Operation][]string

// Allows reports whether the role may perform the operation.
func (t Table) Allows(op schema.Operation, role string) bool {
	for _, r := range t[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Filter is the compiled ownership filter descriptor. The authorization
// collaborator interprets it; AdminBypass is an annotation that the "admin"
// role skips the filter, not an enforcement action performed here.
type Filter struct {
	OwnerField  string             `json:"owner_field"`
	AutoFilter  bool               `json:"auto_filter,omitempty"`
	AppliesTo   []schema.Operation `json:"applies_to"`
	AdminBypass bool               `json:"admin_bypass,omitempty"`
}

// Applies reports whether the filter covers the operation. Operations
// outside AppliesTo are governed purely by the role table.
func (f *Filter) Applies(op schema.Operation) bool {
	if f == nil {
		return false
	}
	for _, o := range f.AppliesTo {
		if o == op {
			return true
		}
	}
	return false
}

// Compile produces the complete policy table and, when the model declares
// an ownership rule, the per-operation filter descriptor. Role lists are
// deduplicated and sorted so the output is independent of declaration order.
func Compile(m schema.Model) (Table, *Filter) {
	table := make(Table, len(schema.Operations))
	for _, op := range schema.Operations {
		table[op] = normalizeRoles(m.Access[op])
	}

	if m.Ownership == nil {
		return table, nil
	}

	filter := &Filter{
		OwnerField:  m.Ownership.Field,
		AutoFilter:  m.Ownership.AutoFilter,
		AppliesTo:   normalizeOps(m.Ownership.Operations),
		AdminBypass: m.Ownership.AdminBypass,
	}

	return table, filter
}

// normalizeRoles returns a sorted, deduplicated copy. The table always
// carries a non-nil slice so emitted JSON is stable ([] rather than null).
func normalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, r := range roles {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// normalizeOps orders operations canonically and drops duplicates.
func normalizeOps(ops []schema.Operation) []schema.Operation {
	declared := make(map[schema.Operation]bool, len(ops))
	for _, op := range ops {
		declared[op] = true
	}
	out := make([]schema.Operation, 0, len(declared))
	for _, op := range schema.Operations {
		if declared[op] {
			out = append(out, op)
		}
	}
	return out
}
