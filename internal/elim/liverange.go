package elim

import "github.com/xyproto/varelim/internal/ast"

// runLiveRangeAnalysis implements §4.6. It walks the body a second
// time, tracking which single-def variables are currently live
// (declared but not yet past their last use), and flags a variable as
// mutation-tainted if any dependency could be mutated during its live
// range or a control-flow boundary crosses it.
func runLiveRangeAnalysis(body []ast.Node, t *tables) {
	live := map[string]bool{}
	processBlock(body, live, t)
}

// processBlock is the block visitor: it processes each statement of a
// sequence against the same live set, threading it forward in program
// order.
func processBlock(stmts []ast.Node, live map[string]bool, t *tables) {
	for _, stmt := range stmts {
		processStmt(stmt, live, t)
	}
}

// processBlockOrStmt handles a single-node branch slot (an `if`'s then/
// else, the target of a `label`) that may itself be a *ast.Block
// wrapping a statement sequence, or a bare statement.
func processBlockOrStmt(n ast.Node, live map[string]bool, t *tables) {
	if n == nil {
		return
	}
	if blk, ok := n.(*ast.Block); ok {
		processBlock(blk.Body, live, t)
		return
	}
	processStmt(n, live, t)
}

// runBranch evaluates one branch of a compound node starting from
// startLive (a fresh copy for ordinary branches, or a forced-empty set
// for loop bodies per §4.6's loop rule), then kills in outerLive
// anything absent from the branch's resulting live set — i.e. anything
// that "left live" while the branch ran.
func runBranch(outerLive map[string]bool, startLive map[string]bool, body func(map[string]bool)) {
	body(startLive)
	for name := range outerLive {
		if !startLive[name] {
			delete(outerLive, name)
		}
	}
}

// processStmt is the block visitor's per-statement dispatch.
func processStmt(stmt ast.Node, live map[string]bool, t *tables) {
	switch s := stmt.(type) {
	case *ast.Var:
		for _, b := range s.Bindings {
			mutationVisit(b.Init, live, t)
			if t.isSingleDef[b.Name] {
				live[b.Name] = true
			}
		}

	case *ast.If:
		mutationVisit(s.Cond, live, t)
		base := cloneLiveSet(live)
		runBranch(live, cloneLiveSet(base), func(l map[string]bool) {
			processBlockOrStmt(s.Then, l, t)
		})
		if s.Else != nil {
			runBranch(live, cloneLiveSet(base), func(l map[string]bool) {
				processBlockOrStmt(s.Else, l, t)
			})
		}

	case *ast.Switch:
		mutationVisit(s.Discriminant, live, t)
		base := cloneLiveSet(live)
		// A missing default case means "nothing executes" is one of the
		// possible outcomes, but that outcome leaves live unchanged from
		// base — every other branch below already intersects live down
		// to a subset of base, so the no-op outcome never needs its own
		// pass: it can't remove anything a real case didn't already.
		for _, c := range s.Cases {
			cs := c
			runBranch(live, cloneLiveSet(base), func(l map[string]bool) {
				if cs.Test != nil {
					mutationVisit(cs.Test, l, t)
				}
				processBlock(cs.Body, l, t)
			})
		}

	case *ast.Try:
		base := cloneLiveSet(live)
		runBranch(live, cloneLiveSet(base), func(l map[string]bool) {
			processBlock(s.Body, l, t)
		})
		if s.HasCatch {
			runBranch(live, cloneLiveSet(base), func(l map[string]bool) {
				processBlock(s.Catch, l, t)
			})
		}
		if s.HasFinally {
			runBranch(live, cloneLiveSet(base), func(l map[string]bool) {
				processBlock(s.Finally, l, t)
			})
		}

	case *ast.Do:
		// Loop bodies start from an empty live set: nothing from the
		// enclosing scope may be treated as live inside a loop body,
		// because the body may run zero or many times and nothing
		// about the enclosing set can be proven preserved across an
		// iteration. Consequently every variable live before the loop
		// is killed on exit.
		runBranch(live, map[string]bool{}, func(l map[string]bool) {
			processBlock(s.Body, l, t)
		})
		mutationVisit(s.Cond, live, t)

	case *ast.While:
		mutationVisit(s.Cond, live, t)
		runBranch(live, map[string]bool{}, func(l map[string]bool) {
			processBlock(s.Body, l, t)
		})

	case *ast.For:
		if s.Init != nil {
			processStmt(s.Init, live, t)
		}
		if s.Cond != nil {
			mutationVisit(s.Cond, live, t)
		}
		runBranch(live, map[string]bool{}, func(l map[string]bool) {
			processBlock(s.Body, l, t)
			if s.Post != nil {
				mutationVisit(s.Post, l, t)
			}
		})

	case *ast.ForIn:
		if _, isVar := s.Var.(*ast.Var); !isVar {
			mutationVisit(s.Var, live, t)
		}
		mutationVisit(s.Object, live, t)
		runBranch(live, map[string]bool{}, func(l map[string]bool) {
			processBlock(s.Body, l, t)
		})

	case *ast.Label:
		// A label is itself a control-flow kind (§3): it may be the
		// target of a break/continue elsewhere, so treat entering it
		// as a conservative boundary, then let its body run as an
		// ordinary nested statement so a labeled loop still gets the
		// loop treatment above.
		killControlFlow(map[string]bool{}, live, t)
		processBlockOrStmt(s.Body, live, t)

	case *ast.Block:
		processBlock(s.Body, live, t)

	default:
		mutationVisit(stmt, live, t)
	}
}

// killControlFlow implements the control-flow-kind rule of §4.6: every
// live variable is killed unless it is used in this statement and does
// not depend on any non-local.
func killControlFlow(used map[string]bool, live map[string]bool, t *tables) {
	for name := range live {
		if used[name] && !t.dependsOnGlobal[name] {
			continue
		}
		delete(live, name)
	}
}

// mutationVisit is the mutation visitor: it evaluates a node for its
// effects on the live set, recursing into children to reach every
// nested assignment, call, and name read.
func mutationVisit(n ast.Node, live map[string]bool, t *tables) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *ast.Assign:
		used := collectNames(v.Target, v.Value)
		// Read effects of the target and value subtrees are resolved
		// against the live set as it stood going into this statement,
		// before either kill rule below removes anything — otherwise a
		// variable read here as part of computing its own new value
		// would be flagged as a stale read of itself.
		mutationVisit(v.Target, live, t)
		mutationVisit(v.Value, live, t)
		killByReassignment(firstIdent(v.Target), live, t)
		// Assignment may itself have side effects on other globals
		// through getters/setters: anything depending on a non-local
		// and not used in this statement is killed too.
		for name := range live {
			if t.dependsOnGlobal[name] && !used[name] {
				delete(live, name)
			}
		}

	case *ast.UnaryPrefix:
		if isIncDec(v.Op) {
			killByReassignment(firstIdent(v.Operand), live, t)
		}
		mutationVisit(v.Operand, live, t)

	case *ast.UnaryPostfix:
		if isIncDec(v.Op) {
			killByReassignment(firstIdent(v.Operand), live, t)
		}
		mutationVisit(v.Operand, live, t)

	case *ast.Call:
		used := collectNames(append([]ast.Node{v.Callee}, v.Args...)...)
		// Names read by this very call are resolved before the
		// control-flow-kind kill below, so a value being passed
		// through the call isn't flagged as read-after-kill against
		// itself.
		mutationVisit(v.Callee, live, t)
		for _, a := range v.Args {
			mutationVisit(a, live, t)
		}
		killControlFlow(used, live, t)

	case *ast.New:
		used := collectNames(append([]ast.Node{v.Callee}, v.Args...)...)
		mutationVisit(v.Callee, live, t)
		for _, a := range v.Args {
			mutationVisit(a, live, t)
		}
		killControlFlow(used, live, t)

	case *ast.Return:
		var used map[string]bool
		if v.Value != nil {
			used = collectNames(v.Value)
			mutationVisit(v.Value, live, t)
		} else {
			used = map[string]bool{}
		}
		killControlFlow(used, live, t)

	case *ast.Throw:
		used := collectNames(v.Value)
		mutationVisit(v.Value, live, t)
		killControlFlow(used, live, t)

	case *ast.Break:
		killControlFlow(map[string]bool{}, live, t)

	case *ast.Continue:
		killControlFlow(map[string]bool{}, live, t)

	case *ast.Debugger:
		killControlFlow(map[string]bool{}, live, t)

	case *ast.Label:
		mutationVisit(v.Body, live, t)
		killControlFlow(map[string]bool{}, live, t)

	case *ast.Name:
		// Reading a single-def name while it is not currently live means
		// one of its dependencies was invalidated earlier in its live
		// range — the decisive "saw a use after a kill" fact (§9(c)).
		// This must never be conflated with "never was live": only a
		// name tracked as single-def can trip it at all.
		if t.isSingleDef[v.Ident] && !live[v.Ident] {
			t.depsMutated[v.Ident] = true
		}

	case *ast.Binary:
		mutationVisit(v.Left, live, t)
		mutationVisit(v.Right, live, t)

	case *ast.Sub:
		mutationVisit(v.Object, live, t)
		mutationVisit(v.Index, live, t)

	default:
		// Num, String, and any opaque/unknown kind: no effect, no
		// children worth recursing into.
	}
}

// killByReassignment removes every live variable whose initializer
// depends on target, since target has just been reassigned and those
// initializers are no longer faithful.
func killByReassignment(target string, live map[string]bool, t *tables) {
	if target == "" {
		return
	}
	for dep := range t.dependsOn[target] {
		delete(live, dep)
	}
}
