package resolver

import (
	"errors"
	"reflect"
	"testing"

	"github.com/modelgate/modelgate/core/schema"
)

func idField() schema.Field {
	return schema.Field{Name: "id", Type: schema.FieldTypeInteger, PrimaryKey: true, AutoIncrement: true}
}

func blogModels() []schema.Model {
	return []schema.Model{
		{
			Name:   "user",
			Fields: []schema.Field{idField()},
			Relations: []schema.Relation{
				{Name: "posts", Kind: schema.RelationHasMany, Target: "post", Inverse: "author"},
			},
		},
		{
			Name: "post",
			Fields: []schema.Field{
				idField(),
				{Name: "authorId", Type: schema.FieldTypeInteger, Required: true},
			},
			Relations: []schema.Relation{
				{Name: "author", Kind: schema.RelationBelongsTo, Target: "user", ForeignKey: "authorId", Inverse: "posts"},
			},
		},
	}
}

func TestResolve(t *testing.T) {
	graph, errs := Resolve(blogModels())
	if len(errs) != 0 {
		t.Fatalf("Resolve() errors = %v, want none", errs)
	}

	want := []Edge{
		{From: "post", Relation: "author", Kind: schema.RelationBelongsTo, To: "user"},
		{From: "user", Relation: "posts", Kind: schema.RelationHasMany, To: "post"},
	}
	if !reflect.DeepEqual(graph.Edges, want) {
		t.Errorf("Edges = %v, want %v", graph.Edges, want)
	}
}

func TestResolve_EdgeOrderIndependent(t *testing.T) {
	models := blogModels()
	forward, errs := Resolve(models)
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	reversed := []schema.Model{models[1], models[0]}
	backward, errs := Resolve(reversed)
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	if !reflect.DeepEqual(forward.Edges, backward.Edges) {
		t.Error("edge order depends on input order")
	}
}

func TestResolve_DanglingTarget(t *testing.T) {
	models := []schema.Model{
		{
			Name:   "user",
			Fields: []schema.Field{idField()},
			Relations: []schema.Relation{
				{Name: "posts", Kind: schema.RelationHasMany, Target: "post"},
			},
		},
	}

	graph, errs := Resolve(models)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}

	var derr DanglingRelationError
	if !errors.As(errs[0], &derr) {
		t.Fatalf("error = %v, want DanglingRelationError", errs[0])
	}
	if derr.Target != "post" {
		t.Errorf("Target = %q, want post", derr.Target)
	}

	// A dangling relation contributes no edge.
	if len(graph.Edges) != 0 {
		t.Errorf("Edges = %v, want none", graph.Edges)
	}
}

func TestResolve_DanglingForeignKey(t *testing.T) {
	models := []schema.Model{
		{Name: "user", Fields: []schema.Field{idField()}},
		{
			Name:   "post",
			Fields: []schema.Field{idField()},
			Relations: []schema.Relation{
				{Name: "author", Kind: schema.RelationBelongsTo, Target: "user", ForeignKey: "authorId"},
			},
		},
	}

	_, errs := Resolve(models)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1: %v", len(errs), errs)
	}

	var ferr DanglingForeignKeyError
	if !errors.As(errs[0], &ferr) {
		t.Fatalf("error = %v, want DanglingForeignKeyError", errs[0])
	}
	if ferr.Field != "authorId" {
		t.Errorf("Field = %q, want authorId", ferr.Field)
	}
}

func TestResolve_InverseMismatch(t *testing.T) {
	t.Run("inverse does not exist", func(t *testing.T) {
		models := blogModels()
		models[1].Relations[0].Inverse = "writer"

		_, errs := Resolve(models)
		if len(errs) != 1 {
			t.Fatalf("len(errs) = %d, want 1: %v", len(errs), errs)
		}
		var ierr InverseMismatchError
		if !errors.As(errs[0], &ierr) {
			t.Fatalf("error = %v, want InverseMismatchError", errs[0])
		}
		if ierr.Reason != "relation does not exist" {
			t.Errorf("Reason = %q", ierr.Reason)
		}
	})

	t.Run("inverse points elsewhere", func(t *testing.T) {
		models := append(blogModels(), schema.Model{
			Name:   "comment",
			Fields: []schema.Field{idField()},
			Relations: []schema.Relation{
				{Name: "replies", Kind: schema.RelationHasMany, Target: "comment", Inverse: "author"},
			},
		})
		// comment.replies claims post.author... but targets comment itself,
		// whose "author" relation does not exist.
		models[2].Relations[0].Target = "post"

		_, errs := Resolve(models)
		var ierr InverseMismatchError
		if len(errs) != 1 || !errors.As(errs[0], &ierr) {
			t.Fatalf("errs = %v, want one InverseMismatchError", errs)
		}
	})

	t.Run("inverse wrong kind", func(t *testing.T) {
		models := blogModels()
		// Both sides belongs_to: neither complements the other.
		models[0].Relations[0] = schema.Relation{
			Name: "posts", Kind: schema.RelationBelongsTo, Target: "post",
			ForeignKey: "id", Inverse: "author",
		}

		_, errs := Resolve(models)
		var ierr InverseMismatchError
		found := false
		for _, err := range errs {
			if errors.As(err, &ierr) {
				found = true
			}
		}
		if !found {
			t.Fatalf("errs = %v, want an InverseMismatchError", errs)
		}
	})
}

func TestResolve_CollectsAllErrors(t *testing.T) {
	models := []schema.Model{
		{
			Name:   "order",
			Fields: []schema.Field{idField()},
			Relations: []schema.Relation{
				{Name: "customer", Kind: schema.RelationBelongsTo, Target: "customer", ForeignKey: "customerId"},
				{Name: "items", Kind: schema.RelationHasMany, Target: "orderItem"},
				{Name: "coupon", Kind: schema.RelationBelongsTo, Target: "coupon", ForeignKey: "couponId"},
			},
		},
		{Name: "customer", Fields: []schema.Field{idField()}},
	}

	// customer exists but customerId does not: foreign key error.
	// orderItem and coupon are unregistered: two dangling target errors.
	_, errs := Resolve(models)
	if len(errs) != 3 {
		t.Fatalf("len(errs) = %d, want 3: %v", len(errs), errs)
	}
}

func TestGraph_Targets(t *testing.T) {
	graph, errs := Resolve(blogModels())
	if len(errs) != 0 {
		t.Fatal(errs)
	}

	if got := graph.Targets("user"); !reflect.DeepEqual(got, []string{"post"}) {
		t.Errorf("Targets(user) = %v, want [post]", got)
	}
	if got := graph.Targets("ghost"); len(got) != 0 {
		t.Errorf("Targets(ghost) = %v, want empty", got)
	}
}
