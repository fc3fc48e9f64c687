// Package walk provides the single generic AST traversal primitive that
// every analysis and rewrite pass in internal/elim is built on (§4.1).
//
// The walker is pre-order: a node is offered to the visitor before its
// children are visited. The visitor's three possible answers are:
//
//   - Replace: the returned node is spliced into the parent slot and the
//     walker does not descend into the original node's children.
//   - Stop: traversal aborts everywhere, immediately, and the sentinel
//     propagates all the way back to the caller.
//   - Continue: the walker descends into the node's own children.
//
// Because the node set is a closed, finite tagged union, descent is
// implemented as one exhaustive type switch rather than a registered
// per-kind callback table — the generic part of the primitive is its
// contract (one Walk function, one Visitor signature used by every
// pass), not reflection-based genericity over the node shapes.
package walk

import "github.com/xyproto/varelim/internal/ast"

// Result is a visitor's verdict for the node it was just offered.
type Result int

const (
	// Continue descends into the node's children.
	Continue Result = iota
	// Replace splices the returned node into the parent slot without
	// descending into the original node's children.
	Replace
	// Stop aborts the whole traversal immediately.
	Stop
)

// Visitor is offered every node in pre-order. It returns the action to
// take and, for Replace, the replacement node.
type Visitor func(n ast.Node) (ast.Node, Result)

// Walk traverses n in pre-order, applying visit to every node reached
// and splicing replacements in place. It returns the (possibly replaced)
// node and whether traversal was aborted by a Stop result.
func Walk(n ast.Node, visit Visitor) (ast.Node, bool) {
	if n == nil {
		return nil, false
	}
	replacement, result := visit(n)
	switch result {
	case Replace:
		return replacement, false
	case Stop:
		return n, true
	}

	switch v := n.(type) {
	case *ast.Var:
		for i := range v.Bindings {
			child, stopped := Walk(v.Bindings[i].Init, visit)
			v.Bindings[i].Init = child
			if stopped {
				return v, true
			}
		}
		return v, false

	case *ast.Name, *ast.Num, *ast.String, *ast.Debugger:
		return v, false

	case *ast.Binary:
		if stopped := walkSlot(&v.Left, visit); stopped {
			return v, true
		}
		if stopped := walkSlot(&v.Right, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.Sub:
		if stopped := walkSlot(&v.Object, visit); stopped {
			return v, true
		}
		if stopped := walkSlot(&v.Index, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.Assign:
		if stopped := walkSlot(&v.Target, visit); stopped {
			return v, true
		}
		if stopped := walkSlot(&v.Value, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.UnaryPrefix:
		if stopped := walkSlot(&v.Operand, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.UnaryPostfix:
		if stopped := walkSlot(&v.Operand, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.Call:
		if stopped := walkSlot(&v.Callee, visit); stopped {
			return v, true
		}
		if stopped := WalkList(&v.Args, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.New:
		if stopped := walkSlot(&v.Callee, visit); stopped {
			return v, true
		}
		if stopped := WalkList(&v.Args, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.If:
		if stopped := walkSlot(&v.Cond, visit); stopped {
			return v, true
		}
		if stopped := walkSlot(&v.Then, visit); stopped {
			return v, true
		}
		if v.Else != nil {
			if stopped := walkSlot(&v.Else, visit); stopped {
				return v, true
			}
		}
		return v, false

	case *ast.Switch:
		if stopped := walkSlot(&v.Discriminant, visit); stopped {
			return v, true
		}
		for i := range v.Cases {
			if v.Cases[i].Test != nil {
				if stopped := walkSlot(&v.Cases[i].Test, visit); stopped {
					return v, true
				}
			}
			if stopped := WalkList(&v.Cases[i].Body, visit); stopped {
				return v, true
			}
		}
		return v, false

	case *ast.Try:
		if stopped := WalkList(&v.Body, visit); stopped {
			return v, true
		}
		if v.HasCatch {
			if stopped := WalkList(&v.Catch, visit); stopped {
				return v, true
			}
		}
		if v.HasFinally {
			if stopped := WalkList(&v.Finally, visit); stopped {
				return v, true
			}
		}
		return v, false

	case *ast.Do:
		if stopped := WalkList(&v.Body, visit); stopped {
			return v, true
		}
		if stopped := walkSlot(&v.Cond, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.While:
		if stopped := walkSlot(&v.Cond, visit); stopped {
			return v, true
		}
		if stopped := WalkList(&v.Body, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.For:
		if v.Init != nil {
			if stopped := walkSlot(&v.Init, visit); stopped {
				return v, true
			}
		}
		if v.Cond != nil {
			if stopped := walkSlot(&v.Cond, visit); stopped {
				return v, true
			}
		}
		if v.Post != nil {
			if stopped := walkSlot(&v.Post, visit); stopped {
				return v, true
			}
		}
		if stopped := WalkList(&v.Body, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.ForIn:
		// §4.1: a for-in's declarator slot is skipped entirely when its
		// head kind is `var` — the iteration variable has unspecified
		// mutation semantics that would defeat analysis if observed.
		if _, isVar := v.Var.(*ast.Var); !isVar && v.Var != nil {
			if stopped := walkSlot(&v.Var, visit); stopped {
				return v, true
			}
		}
		if stopped := walkSlot(&v.Object, visit); stopped {
			return v, true
		}
		if stopped := WalkList(&v.Body, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.Function:
		if stopped := WalkList(&v.Body, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.With:
		if stopped := walkSlot(&v.Object, visit); stopped {
			return v, true
		}
		if stopped := walkSlot(&v.Body, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.Return:
		if v.Value != nil {
			if stopped := walkSlot(&v.Value, visit); stopped {
				return v, true
			}
		}
		return v, false

	case *ast.Break, *ast.Continue:
		return v, false

	case *ast.Throw:
		if stopped := walkSlot(&v.Value, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.Label:
		if stopped := walkSlot(&v.Body, visit); stopped {
			return v, true
		}
		return v, false

	case *ast.Block:
		if stopped := WalkList(&v.Body, visit); stopped {
			return v, true
		}
		return v, false

	default:
		// Unknown kinds are opaque leaves: structurally present but
		// contributing nothing to analysis (§7).
		return n, false
	}
}

// walkSlot walks the node at *slot and writes back the (possibly
// replaced) result. It returns whether traversal was aborted.
func walkSlot(slot *ast.Node, visit Visitor) bool {
	replaced, stopped := Walk(*slot, visit)
	*slot = replaced
	return stopped
}

// WalkList walks each element of *list in order, replacing elements in
// place. It returns whether traversal was aborted partway through.
func WalkList(list *[]ast.Node, visit Visitor) bool {
	for i := range *list {
		replaced, stopped := Walk((*list)[i], visit)
		(*list)[i] = replaced
		if stopped {
			return true
		}
	}
	return false
}
