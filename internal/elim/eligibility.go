package elim

// Stats is bookkeeping over the eligibility decision, purely for
// observability: it records how many declared locals were rejected
// at each of §4.7's three conditions. It never feeds back into
// any decision.
type Stats struct {
	RejectedNotSingleDef     int
	RejectedComplexInit      int
	RejectedUseCapOrMutation int
}

// runEligibility implements §4.7: a single-def variable is eliminable
// iff its initializer uses only simple node kinds, and either it is
// never used or its use count is within MaxUses and none of its
// dependencies were mutated during its live range.
func runEligibility(t *tables, maxUses int) (map[string]bool, Stats) {
	var stats Stats
	eligible := map[string]bool{}
	for _, v := range t.declOrder {
		if !t.isSingleDef[v] {
			stats.RejectedNotSingleDef++
			continue
		}
		if !t.usesOnlySimple[v] {
			stats.RejectedComplexInit++
			continue
		}
		uses := t.useCount[v]
		if uses == 0 {
			eligible[v] = true
			continue
		}
		if uses <= maxUses && !t.depsMutated[v] {
			eligible[v] = true
			continue
		}
		stats.RejectedUseCapOrMutation++
	}
	return eligible, stats
}
