package elim

import (
	"github.com/xyproto/varelim/internal/ast"
	"github.com/xyproto/varelim/internal/walk"
)

// firstIdent resolves the "first identifier inside the left-hand side"
// of an assignment or unary-mutation target (§4.3, §4.6): it walks down
// through sub-style children until a bare name is reached. It returns ""
// if the target's base is not a simple identifier.
func firstIdent(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Name:
		return v.Ident
	case *ast.Sub:
		return firstIdent(v.Object)
	default:
		return ""
	}
}

func isIncDec(op string) bool {
	return op == "++" || op == "--"
}

func cloneLiveSet(live map[string]bool) map[string]bool {
	out := make(map[string]bool, len(live))
	for k := range live {
		out[k] = true
	}
	return out
}

// collectNames returns the set of every identifier read anywhere within
// the given subtrees, used to compute "used_in_this_statement" for
// assign and call nodes (§4.6).
func collectNames(nodes ...ast.Node) map[string]bool {
	set := map[string]bool{}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		walk.Walk(n, func(x ast.Node) (ast.Node, walk.Result) {
			if name, ok := x.(*ast.Name); ok {
				set[name.Ident] = true
			}
			return x, walk.Continue
		})
	}
	return set
}
