package ast

import "testing"

func TestCloneDoesNotAliasBinaryOperands(t *testing.T) {
	original := &Binary{Op: "+", Left: &Name{Ident: "a"}, Right: &Num{Value: 2}}
	cloned := Clone(original).(*Binary)

	clonedLeft := cloned.Left.(*Name)
	clonedLeft.Ident = "mutated"

	originalLeft := original.Left.(*Name)
	if originalLeft.Ident != "a" {
		t.Errorf("mutating clone's Left mutated the original: got %q", originalLeft.Ident)
	}
}

func TestCloneVarCopiesBindingsIndependently(t *testing.T) {
	original := &Var{Bindings: []Binding{
		{Name: "x", Init: &Num{Value: 1}},
		{Name: "y", Init: &Name{Ident: "x"}},
	}}
	cloned := Clone(original).(*Var)

	cloned.Bindings[0].Init.(*Num).Value = 99
	if original.Bindings[0].Init.(*Num).Value != 1 {
		t.Errorf("mutating clone's binding mutated the original")
	}
	if len(cloned.Bindings) != 2 || cloned.Bindings[1].Name != "y" {
		t.Errorf("clone lost bindings: %+v", cloned.Bindings)
	}
}

func TestCloneNilIsNil(t *testing.T) {
	if Clone(nil) != nil {
		t.Errorf("Clone(nil) should be nil")
	}
}
