// Package compiler turns a sealed registry into the compiled schema
// artifact: per-model records with synthesized lifecycle fields, the
// resolved relation graph, and complete access policy tables.
//
// Compilation is deterministic. Models are emitted sorted by name, so two
// processes that register the same model set in different orders produce
// byte-identical artifacts.
package compiler

import (
	"sort"
	"sync"

	"github.com/modelgate/modelgate/core/policy"
	"github.com/modelgate/modelgate/core/registry"
	"github.com/modelgate/modelgate/core/resolver"
	"github.com/modelgate/modelgate/core/schema"
)

// Compiler compiles a sealed registry into an Artifact exactly once.
// The result (including a failure) is cached; concurrent first callers
// share the single computation.
type Compiler struct {
	reg *registry.Registry

	once     sync.Once
	artifact *Artifact
	err      error
}

// New creates a compiler bound to the given registry.
func New(reg *registry.Registry) *Compiler {
	return &Compiler{reg: reg}
}

// Compile returns the compiled artifact for the sealed registry. It fails
// with ErrRegistryOpen before sealing, and with a *CompileError carrying
// every resolver finding when the relation graph is structurally broken —
// in that case no artifact is emitted at all.
//
// Safe for concurrent use; the computation runs at most once.
func (c *Compiler) Compile() (*Artifact, error) {
	c.once.Do(func() {
		c.artifact, c.err = c.compile()
	})
	return c.artifact, c.err
}

func (c *Compiler) compile() (*Artifact, error) {
	if !c.reg.Sealed() {
		return nil, ErrRegistryOpen
	}

	models := c.reg.List()
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })

	// Synthesis runs before resolution so relations may reference
	// synthesized fields.
	synthesized := make([]map[string]bool, len(models))
	for i := range models {
		synthesized[i] = synthesize(&models[i])
	}

	graph, errs := resolver.Resolve(models)
	if len(errs) > 0 {
		return nil, &CompileError{Errors: errs}
	}

	compiled := make([]CompiledModel, len(models))
	for i, m := range models {
		compiled[i] = compileModel(m, synthesized[i])
	}

	sum, err := checksum(compiled, graph)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Models:   compiled,
		Graph:    graph,
		Checksum: sum,
	}, nil
}

func compileModel(m schema.Model, synthesized map[string]bool) CompiledModel {
	fields := make([]CompiledField, len(m.Fields))
	for i, f := range m.Fields {
		fields[i] = CompiledField{
			Name:          f.Name,
			Type:          f.Type,
			Required:      f.IsRequired(),
			Unique:        f.IsUnique(),
			PrimaryKey:    f.PrimaryKey,
			AutoIncrement: f.AutoIncrement,
			Default:       f.Default,
			Computed:      f.Computed,
			Synthesized:   synthesized[f.Name],
			Rules:         f.Rules,
		}
	}

	relations := make([]CompiledRelation, len(m.Relations))
	for i, r := range m.Relations {
		relations[i] = CompiledRelation{
			Name:       r.Name,
			Kind:       r.Kind,
			Target:     r.Target,
			ForeignKey: r.ForeignKey,
			Inverse:    r.Inverse,
		}
	}

	table, filter := policy.Compile(m)

	return CompiledModel{
		Name:       m.Name,
		Module:     m.Module,
		Table:      m.TableName(),
		Persisted:  m.IsPersisted(),
		Fields:     fields,
		PrimaryKey: m.PrimaryKeyFields(),
		Relations:  relations,
		Access:     table,
		Ownership:  filter,
	}
}
