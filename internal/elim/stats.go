package elim

import (
	"github.com/xyproto/varelim/internal/ast"
	"github.com/xyproto/varelim/internal/walk"
)

// runBasicStats implements §4.3: a single traversal recording, for
// every name that occurs in the body, whether it is a declared local,
// whether it is assigned exactly once, its initializer, and its total
// read count.
func runBasicStats(body []ast.Node, t *tables) {
	list := body
	walk.WalkList(&list, func(n ast.Node) (ast.Node, walk.Result) {
		switch v := n.(type) {
		case *ast.Var:
			for _, b := range v.Bindings {
				init := b.Init
				if init == nil {
					init = ast.Undefined()
				}
				if t.isLocal[b.Name] {
					// A second `var` binding for the same name
					// disqualifies it from single-def status.
					t.isSingleDef[b.Name] = false
					continue
				}
				t.isLocal[b.Name] = true
				// A read or assignment seen before this first
				// declaration has already marked the name
				// non-single-def; keep that mark.
				if _, seen := t.isSingleDef[b.Name]; !seen {
					t.isSingleDef[b.Name] = true
				}
				t.initialValue[b.Name] = init
				t.useCount[b.Name] = 0
				t.declOrder = append(t.declOrder, b.Name)
			}
			return n, walk.Continue

		case *ast.Name:
			if _, tracked := t.useCount[v.Ident]; tracked {
				t.useCount[v.Ident]++
			} else {
				// Read precedes any declaration we tracked: a free
				// variable (parameter, global, or forward reference).
				t.isSingleDef[v.Ident] = false
			}
			return n, walk.Continue

		case *ast.Assign:
			if name := firstIdent(v.Target); name != "" {
				t.isSingleDef[name] = false
			}
			return n, walk.Continue

		case *ast.UnaryPrefix:
			if name := firstIdent(v.Operand); name != "" {
				t.isSingleDef[name] = false
			}
			return n, walk.Continue

		case *ast.UnaryPostfix:
			if name := firstIdent(v.Operand); name != "" {
				t.isSingleDef[name] = false
			}
			return n, walk.Continue
		}
		return n, walk.Continue
	})
}
