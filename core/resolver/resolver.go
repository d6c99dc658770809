// Package resolver performs the deferred, whole-graph relation pass over a
// sealed model set. A model may reference a target declared by a different,
// independently loaded module, so relation correctness can only be judged
// once every model is registered.
package resolver

import (
	"fmt"
	"sort"

	"github.com/modelgate/modelgate/core/schema"
)

// Edge is a directed edge in the relation graph, model → target.
type Edge struct {
	From     string              `json:"from"`
	Relation string              `json:"relation"`
	Kind     schema.RelationKind `json:"kind"`
	To       string              `json:"to"`
}

// Graph is the resolved relation graph exposed in the compiled artifact.
// Consumers (e.g., join planning in the storage collaborator) read it;
// nothing is executed here.
type Graph struct {
	Edges []Edge `json:"edges,omitempty"`
}

// Targets returns the distinct targets reachable from the named model,
// sorted by name.
func (g *Graph) Targets(model string) []string {
	seen := make(map[string]bool)
	for _, e := range g.Edges {
		if e.From == model {
			seen[e.To] = true
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// DanglingRelationError reports a relation whose target model is not
// registered.
type DanglingRelationError struct {
	Model    string
	Relation string
	Target   string
}

func (e DanglingRelationError) Error() string {
	return fmt.Sprintf("model %q: relation %q targets unregistered model %q",
		e.Model, e.Relation, e.Target)
}

// DanglingForeignKeyError reports a belongs_to relation whose foreign key
// does not name a field on the owning model.
type DanglingForeignKeyError struct {
	Model    string
	Relation string
	Field    string
}

func (e DanglingForeignKeyError) Error() string {
	return fmt.Sprintf("model %q: relation %q: foreign key %q does not exist",
		e.Model, e.Relation, e.Field)
}

// InverseMismatchError reports a relation whose declared inverse does not
// exist on the target model or disagrees in kind or target.
type InverseMismatchError struct {
	Model    string
	Relation string
	Target   string
	Inverse  string
	Reason   string
}

func (e InverseMismatchError) Error() string {
	return fmt.Sprintf("model %q: relation %q: inverse %q on %q: %s",
		e.Model, e.Relation, e.Inverse, e.Target, e.Reason)
}

// Resolve validates every relation on every model against the full set and
// builds the directed relation graph. Errors are collected, never raised on
// first failure: one pass reports every structural problem in the graph so
// authors can fix a whole batch of cross-module mistakes per attempt.
//
// The models slice is expected to be a sealed-registry snapshot; edges come
// out sorted by (from, relation) so the graph is independent of
// registration order.
func Resolve(models []schema.Model) (*Graph, []error) {
	index := make(map[string]schema.Model, len(models))
	for _, m := range models {
		index[m.Name] = m
	}

	graph := &Graph{}
	var errs []error

	for _, m := range models {
		for _, rel := range m.Relations {
			target, ok := index[rel.Target]
			if !ok {
				errs = append(errs, DanglingRelationError{
					Model: m.Name, Relation: rel.Name, Target: rel.Target,
				})
				continue
			}

			if rel.Kind == schema.RelationBelongsTo {
				if _, ok := m.Field(rel.ForeignKey); !ok {
					errs = append(errs, DanglingForeignKeyError{
						Model: m.Name, Relation: rel.Name, Field: rel.ForeignKey,
					})
				}
			}

			if rel.Inverse != "" {
				if err := checkInverse(m, rel, target); err != nil {
					errs = append(errs, err)
				}
			}

			graph.Edges = append(graph.Edges, Edge{
				From:     m.Name,
				Relation: rel.Name,
				Kind:     rel.Kind,
				To:       rel.Target,
			})
		}
	}

	sort.Slice(graph.Edges, func(i, j int) bool {
		if graph.Edges[i].From != graph.Edges[j].From {
			return graph.Edges[i].From < graph.Edges[j].From
		}
		return graph.Edges[i].Relation < graph.Edges[j].Relation
	})

	return graph, errs
}

// checkInverse verifies the declared inverse relation exists on the target
// and points back with the complementary kind. A silent mismatch would
// misrepresent the relation graph to the storage collaborator, so this is a
// hard compile-time check.
func checkInverse(m schema.Model, rel schema.Relation, target schema.Model) error {
	inv, ok := target.Relation(rel.Inverse)
	if !ok {
		return InverseMismatchError{
			Model: m.Name, Relation: rel.Name, Target: target.Name,
			Inverse: rel.Inverse, Reason: "relation does not exist",
		}
	}
	if inv.Target != m.Name {
		return InverseMismatchError{
			Model: m.Name, Relation: rel.Name, Target: target.Name,
			Inverse: rel.Inverse,
			Reason:  fmt.Sprintf("targets %q, not %q", inv.Target, m.Name),
		}
	}
	if inv.Kind != rel.Kind.InverseKind() {
		return InverseMismatchError{
			Model: m.Name, Relation: rel.Name, Target: target.Name,
			Inverse: rel.Inverse,
			Reason:  fmt.Sprintf("kind %q does not complement %q", inv.Kind, rel.Kind),
		}
	}
	return nil
}
