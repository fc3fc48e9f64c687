package elim

import "github.com/xyproto/varelim/internal/ast"

// MaxUses bounds how many use sites a variable may have and still be
// considered for elimination when it is actually read (§4.7). A
// variable with zero uses is always eliminable regardless of this
// bound; the bound only gates the "replace every read" case, because
// replacing more than a handful of sites risks growing the output and
// duplicating any remaining side effects baked into the initializer.
const MaxUses = 3

// Config holds the tunables of a single Eliminate call.
type Config struct {
	MaxUses int
}

// DefaultConfig returns the pass's default tuning.
func DefaultConfig() Config {
	return Config{MaxUses: MaxUses}
}

// Result reports what Eliminate did to one function body.
type Result struct {
	// Skipped is true when the closure guard (§4.2) rejected the body
	// outright; Count and Stats are zero in that case.
	Skipped bool
	// Count is how many variables were actually eliminated.
	Count int
	Stats Stats
	// Declared lists every local name the pass saw declared, in
	// first-sighting order; Eliminated lists the subset that was
	// actually removed. The driver uses Declared minus Eliminated as
	// the candidate set for typo hints on each eliminated name.
	Declared   []string
	Eliminated []string
}

// Eliminate runs the full pipeline of §4 and §5 against one function
// body, mutating it in place and returning a summary of what happened.
// Each call gets its own fresh analysis state; nothing persists across
// function bodies, and nothing here looks outside the given body.
func Eliminate(body []ast.Node, cfg Config) Result {
	if cfg.MaxUses <= 0 {
		cfg.MaxUses = MaxUses
	}

	if !closureGuard(body) {
		return Result{Skipped: true}
	}

	t := newTables()
	runBasicStats(body, t)
	runInitializerAnalysis(t)
	runTransitiveClosure(t)
	runLiveRangeAnalysis(body, t)
	eligible, stats := runEligibility(t, cfg.MaxUses)

	if len(eligible) == 0 {
		return Result{Count: 0, Stats: stats, Declared: t.declOrder}
	}

	collapseInitializers(t, eligible)
	rewritten := removeDeclarations(body, eligible)
	rewritten = substituteUses(rewritten, t, eligible)
	copy(body, rewritten)

	eliminated := make([]string, 0, len(eligible))
	for _, name := range t.declOrder {
		if eligible[name] {
			eliminated = append(eliminated, name)
		}
	}

	return Result{Count: len(eligible), Stats: stats, Declared: t.declOrder, Eliminated: eliminated}
}
