package elim_test

import (
	"strings"
	"testing"

	"github.com/xyproto/varelim/internal/elim"
	"github.com/xyproto/varelim/internal/sexpr"
)

// run decodes a single-function program, runs Eliminate on its body,
// and returns the re-encoded program alongside the result.
func run(t *testing.T, src string, cfg elim.Config) (string, elim.Result) {
	t.Helper()
	fns, err := sexpr.Decode(src)
	if err != nil {
		t.Fatalf("Decode(%q): %v", src, err)
	}
	if len(fns) != 1 {
		t.Fatalf("expected exactly one function, got %d", len(fns))
	}
	result := elim.Eliminate(fns[0].Body, cfg)
	return sexpr.Encode(fns), result
}

func TestUnusedSingleDef(t *testing.T) {
	// S1: var a = 1; return 2;  ->  return 2;  count 1.
	out, result := run(t, `(defun f () (var (a 1)) (return 2))`, elim.DefaultConfig())
	if result.Count != 1 {
		t.Errorf("Count = %d, want 1", result.Count)
	}
	if strings.Contains(out, "(var") {
		t.Errorf("declaration survived rewrite: %s", out)
	}
}

func TestSimpleInlineOneUse(t *testing.T) {
	// S2: var a = x + 1; return a;  ->  return x + 1;  count 1.
	out, result := run(t, `(defun f (x) (var (a (binary + x 1))) (return a))`, elim.DefaultConfig())
	if result.Count != 1 {
		t.Errorf("Count = %d, want 1", result.Count)
	}
	if !strings.Contains(out, "(binary + x 1)") {
		t.Errorf("expected inlined initializer in output, got: %s", out)
	}
	if strings.Contains(out, " a)") || strings.Contains(out, "(var") {
		t.Errorf("variable a should be fully eliminated, got: %s", out)
	}
}

func TestOverUseCap(t *testing.T) {
	// S3: var a = x; f(a) x4  ->  unchanged, count 0.
	src := `(defun f (x) (var (a x)) (call f a) (call f a) (call f a) (call f a))`
	out, result := run(t, src, elim.DefaultConfig())
	if result.Count != 0 {
		t.Errorf("Count = %d, want 0", result.Count)
	}
	if !strings.Contains(out, "(var (a x))") {
		t.Errorf("declaration should survive an over-cap use count, got: %s", out)
	}
}

func TestMutationBetweenDefAndUse(t *testing.T) {
	// S4: var a = x; x = 5; return a;  ->  unchanged, count 0.
	src := `(defun f (x) (var (a x)) (assign = x 5) (return a))`
	_, result := run(t, src, elim.DefaultConfig())
	if result.Count != 0 {
		t.Errorf("Count = %d, want 0 (x was reassigned before a's last use)", result.Count)
	}
}

func TestCallInBetween(t *testing.T) {
	// S5: var a = x; g(); return a;  ->  unchanged when a depends on a non-local.
	src := `(defun f (x) (var (a x)) (call g) (return a))`
	_, result := run(t, src, elim.DefaultConfig())
	if result.Count != 0 {
		t.Errorf("Count = %d, want 0 (call boundary kills a non-local-dependent live var)", result.Count)
	}
}

func TestMutualCollapse(t *testing.T) {
	// S6: var a = x + 1; var b = a * 2; return b;  ->  return (x + 1) * 2; count 2.
	src := `(defun f (x) (var (a (binary + x 1))) (var (b (binary * a 2))) (return b))`
	out, result := run(t, src, elim.DefaultConfig())
	if result.Count != 2 {
		t.Errorf("Count = %d, want 2", result.Count)
	}
	if strings.Contains(out, "(var") {
		t.Errorf("both declarations should be removed, got: %s", out)
	}
	if !strings.Contains(out, "(binary * (binary + x 1) 2)") {
		t.Errorf("expected collapsed initializer (x + 1) * 2 in output, got: %s", out)
	}
}

func TestClosureSkip(t *testing.T) {
	// S7: body containing a function expression -> skipped.
	src := `(defun f () (var (a 1)) (var (g (function nil ()))) (return a))`
	_, result := run(t, src, elim.DefaultConfig())
	if !result.Skipped {
		t.Errorf("expected Skipped = true when a nested function is present")
	}
	if result.Count != 0 {
		t.Errorf("Count = %d, want 0 on a skipped body", result.Count)
	}
}

func TestEligibilityRespectsCustomMaxUses(t *testing.T) {
	src := `(defun f (x) (var (a 1)) (call f a) (call f a))`
	_, result := run(t, src, elim.Config{MaxUses: 1})
	if result.Count != 0 {
		t.Errorf("Count = %d, want 0 when use count exceeds a custom MaxUses of 1", result.Count)
	}
}
