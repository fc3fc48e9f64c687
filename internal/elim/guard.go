package elim

import (
	"github.com/xyproto/varelim/internal/ast"
	"github.com/xyproto/varelim/internal/walk"
)

// closureGuard implements §4.2: if the body contains any defun,
// function, or with node, the whole body is rejected untouched.
// Nested functions capture variables whose use sites this pass never
// sees, and `with` injects bindings of unknown shape; either could
// invalidate a local single-def conclusion drawn without seeing them.
func closureGuard(body []ast.Node) bool {
	eligible := true
	list := body
	walk.WalkList(&list, func(n ast.Node) (ast.Node, walk.Result) {
		switch n.Kind() {
		case ast.KindFunction, ast.KindDefun, ast.KindWith:
			eligible = false
			return n, walk.Stop
		}
		return n, walk.Continue
	})
	return eligible
}
