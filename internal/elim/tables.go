// Package elim implements the redundant local-variable elimination
// pass: the eight-stage analysis and rewrite pipeline of §4, run on one
// function body at a time and discarded afterward (§5).
package elim

import "github.com/xyproto/varelim/internal/ast"

// tables holds the per-function analysis state of §3's data model. A
// fresh tables is created per Eliminate call and never shared or reused
// across function bodies.
type tables struct {
	isLocal     map[string]bool
	isSingleDef map[string]bool
	useCount    map[string]int
	// initialValue holds the initializer expression for a single-def
	// variable. During the collapse step of §4.8 this is updated in
	// place as dependencies among eliminated variables resolve.
	initialValue map[string]ast.Node
	// usesOnlySimple records whether a single-def variable's initializer
	// subtree contains only side-effect-free node kinds.
	usesOnlySimple map[string]bool
	// dependsOn is keyed by the name being depended upon (R); the value
	// is the set of variables (V) whose initializers read R, transitively
	// once the closure pass (§4.5) has run.
	dependsOn map[string]map[string]bool
	// dependsOnGlobal records whether a variable's initializer
	// transitively reads at least one non-local name.
	dependsOnGlobal map[string]bool
	// depsMutated is set when a single-def variable was read while not
	// currently live — i.e. after one of its dependencies was
	// invalidated (§4.6, §9(c)).
	depsMutated map[string]bool
	// declOrder lists declared names in first-sighting order, giving the
	// later passes a deterministic iteration order over what would
	// otherwise be unordered Go maps.
	declOrder []string
}

func newTables() *tables {
	return &tables{
		isLocal:         map[string]bool{},
		isSingleDef:     map[string]bool{},
		useCount:        map[string]int{},
		initialValue:    map[string]ast.Node{},
		usesOnlySimple:  map[string]bool{},
		dependsOn:       map[string]map[string]bool{},
		dependsOnGlobal: map[string]bool{},
		depsMutated:     map[string]bool{},
	}
}

func (t *tables) addDependency(dependency, dependent string) {
	set := t.dependsOn[dependency]
	if set == nil {
		set = map[string]bool{}
		t.dependsOn[dependency] = set
	}
	set[dependent] = true
}
