package elim

// runTransitiveClosure implements §4.5: depends_on[R] is the set of
// variables whose initializers read R. The closure turns this direct
// relation into its transitive form: if V depends on R and R depends on
// S, V comes to depend on S too. The relation is monotonic over a
// finite name set, so naive iteration to a fixpoint terminates.
func runTransitiveClosure(t *tables) {
	changed := true
	for changed {
		changed = false
		for dependency, dependents := range t.dependsOn {
			// For every S that `dependency` itself depends on (i.e.
			// dependency is a member of dependsOn[S])...
			for s, sDependents := range t.dependsOn {
				if !sDependents[dependency] {
					continue
				}
				// ...every V that depends on `dependency` now
				// transitively depends on S too.
				for v := range dependents {
					if !sDependents[v] {
						sDependents[v] = true
						changed = true
					}
					if !t.isLocal[s] {
						t.dependsOnGlobal[v] = true
					}
				}
			}
		}
	}
}
