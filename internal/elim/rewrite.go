package elim

import (
	"github.com/xyproto/varelim/internal/ast"
	"github.com/xyproto/varelim/internal/walk"
)

// collapseInitializers implements the mutual-collapse part of §4.8:
// among the variables chosen for elimination, one eliminated variable's
// initializer may itself read another eliminated variable. Substituting
// repeatedly to a fixpoint folds those chains down so that every
// eligible variable's initialValue entry is expressed purely in terms
// of names that are not themselves being eliminated.
func collapseInitializers(t *tables, eligible map[string]bool) {
	changed := true
	for changed {
		changed = false
		for name := range eligible {
			init := t.initialValue[name]
			substituted, did := substituteEligible(init, t, eligible, name)
			if did {
				t.initialValue[name] = substituted
				changed = true
			}
		}
	}
}

// substituteEligible replaces every read of an eligible variable other
// than self within n by a clone of that variable's current initializer.
// It reports whether any substitution was made.
func substituteEligible(n ast.Node, t *tables, eligible map[string]bool, self string) (ast.Node, bool) {
	did := false
	list := []ast.Node{n}
	walk.WalkList(&list, func(x ast.Node) (ast.Node, walk.Result) {
		name, ok := x.(*ast.Name)
		if !ok {
			return x, walk.Continue
		}
		if name.Ident == self || !eligible[name.Ident] {
			return x, walk.Continue
		}
		did = true
		return ast.Clone(t.initialValue[name.Ident]), walk.Replace
	})
	return list[0], did
}

// removeDeclarations implements the declaration-removal half of §4.8:
// every `var` statement has its eliminated bindings stripped, in place,
// leaving behind only the bindings that survive. A `var` statement left
// with no bindings at all is replaced by an empty block, never deleted
// from its slot outright, so that it remains a valid statement in
// whatever position it occupied (e.g. a lone `for` init clause).
func removeDeclarations(body []ast.Node, eligible map[string]bool) []ast.Node {
	list := body
	walk.WalkList(&list, func(n ast.Node) (ast.Node, walk.Result) {
		v, ok := n.(*ast.Var)
		if !ok {
			return n, walk.Continue
		}
		kept := v.Bindings[:0]
		for _, b := range v.Bindings {
			if !eligible[b.Name] {
				kept = append(kept, b)
			}
		}
		if len(kept) == 0 {
			return &ast.Block{}, walk.Replace
		}
		v.Bindings = kept
		return v, walk.Continue
	})
	return list
}

// substituteUses implements the use-site substitution half of §4.8:
// every remaining read of an eliminated variable is replaced by a fresh
// clone of its (already collapsed) initializer, so no two use sites
// alias the same subtree.
func substituteUses(body []ast.Node, t *tables, eligible map[string]bool) []ast.Node {
	list := body
	walk.WalkList(&list, func(n ast.Node) (ast.Node, walk.Result) {
		name, ok := n.(*ast.Name)
		if !ok {
			return n, walk.Continue
		}
		if !eligible[name.Ident] {
			return n, walk.Continue
		}
		return ast.Clone(t.initialValue[name.Ident]), walk.Replace
	})
	return list
}
