package walk

import (
	"testing"

	"github.com/xyproto/varelim/internal/ast"
)

func TestWalkVisitsEveryName(t *testing.T) {
	body := []ast.Node{
		&ast.Var{Bindings: []ast.Binding{{Name: "x", Init: &ast.Num{Value: 1}}}},
		&ast.If{
			Cond: &ast.Binary{Op: "<", Left: &ast.Name{Ident: "x"}, Right: &ast.Num{Value: 10}},
			Then: &ast.Block{Body: []ast.Node{&ast.Return{Value: &ast.Name{Ident: "x"}}}},
		},
	}

	var names []string
	WalkList(&body, func(n ast.Node) (ast.Node, Result) {
		if name, ok := n.(*ast.Name); ok {
			names = append(names, name.Ident)
		}
		return n, Continue
	})

	if len(names) != 2 || names[0] != "x" || names[1] != "x" {
		t.Errorf("expected two reads of x, got %v", names)
	}
}

func TestWalkReplace(t *testing.T) {
	body := []ast.Node{&ast.Name{Ident: "a"}}
	WalkList(&body, func(n ast.Node) (ast.Node, Result) {
		if name, ok := n.(*ast.Name); ok && name.Ident == "a" {
			return &ast.Name{Ident: "b"}, Replace
		}
		return n, Continue
	})
	got := body[0].(*ast.Name).Ident
	if got != "b" {
		t.Errorf("after Replace, got %q, want %q", got, "b")
	}
}

func TestWalkStop(t *testing.T) {
	body := []ast.Node{
		&ast.Name{Ident: "a"},
		&ast.Name{Ident: "b"},
		&ast.Name{Ident: "c"},
	}
	var seen []string
	WalkList(&body, func(n ast.Node) (ast.Node, Result) {
		name, ok := n.(*ast.Name)
		if !ok {
			return n, Continue
		}
		seen = append(seen, name.Ident)
		if name.Ident == "b" {
			return n, Stop
		}
		return n, Continue
	})
	if len(seen) != 2 {
		t.Errorf("Stop should abort further traversal, saw %v", seen)
	}
}

func TestWalkForInSkipsVarDeclarator(t *testing.T) {
	forIn := &ast.ForIn{
		Var:    &ast.Var{Bindings: []ast.Binding{{Name: "k", Init: ast.Undefined()}}},
		Object: &ast.Name{Ident: "obj"},
		Body:   []ast.Node{&ast.Return{Value: &ast.Name{Ident: "k"}}},
	}
	var visitedVar bool
	Walk(forIn, func(n ast.Node) (ast.Node, Result) {
		if _, ok := n.(*ast.Var); ok {
			visitedVar = true
		}
		return n, Continue
	})
	if visitedVar {
		t.Errorf("walker should skip a for-in's var declarator slot")
	}
}

func TestWalkForInVisitsNonVarDeclarator(t *testing.T) {
	forIn := &ast.ForIn{
		Var:    &ast.Name{Ident: "k"},
		Object: &ast.Name{Ident: "obj"},
		Body:   []ast.Node{&ast.Return{Value: &ast.Name{Ident: "k"}}},
	}
	var names []string
	Walk(forIn, func(n ast.Node) (ast.Node, Result) {
		if name, ok := n.(*ast.Name); ok {
			names = append(names, name.Ident)
		}
		return n, Continue
	})
	if len(names) != 3 {
		t.Errorf("expected var, object, and body read to all be visited, got %v", names)
	}
}
