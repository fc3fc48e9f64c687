package elim

import (
	"github.com/xyproto/varelim/internal/ast"
	"github.com/xyproto/varelim/internal/walk"
)

// runInitializerAnalysis implements §4.4: for every single-def
// variable, walk its initializer subtree, testing whether every visited
// node's own kind is side-effect-free and recording every name the
// initializer reads (other than the literal `undefined`) as a direct
// dependency.
func runInitializerAnalysis(t *tables) {
	for _, v := range t.declOrder {
		if !t.isSingleDef[v] {
			continue
		}
		init := t.initialValue[v]
		simple := true
		walk.Walk(init, func(n ast.Node) (ast.Node, walk.Result) {
			if !ast.IsSimple(n) {
				simple = false
			}
			if name, ok := n.(*ast.Name); ok && name.Ident != "undefined" {
				t.addDependency(name.Ident, v)
				if !t.isLocal[name.Ident] {
					t.dependsOnGlobal[v] = true
				}
			}
			return n, walk.Continue
		})
		t.usesOnlySimple[v] = simple
	}
}
