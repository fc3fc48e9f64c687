package sexpr

import (
	"strings"
	"testing"

	"github.com/xyproto/varelim/internal/ast"
)

func decodeOne(t *testing.T, src string) Function {
	t.Helper()
	fns, err := Decode(src)
	if err != nil {
		t.Fatalf("Decode(%q): %v", src, err)
	}
	if len(fns) != 1 {
		t.Fatalf("expected one function, got %d", len(fns))
	}
	return fns[0]
}

func TestDecodeVarWithAndWithoutInit(t *testing.T) {
	fn := decodeOne(t, `(defun f () (var (a 1) (b)))`)
	v, ok := fn.Body[0].(*ast.Var)
	if !ok || len(v.Bindings) != 2 {
		t.Fatalf("expected a two-binding var, got %#v", fn.Body[0])
	}
	if v.Bindings[0].Name != "a" || v.Bindings[0].Init.(*ast.Num).Value != 1 {
		t.Errorf("binding a decoded wrong: %#v", v.Bindings[0])
	}
	name, ok := v.Bindings[1].Init.(*ast.Name)
	if v.Bindings[1].Name != "b" || !ok || name.Ident != "undefined" {
		t.Errorf("an absent initializer should decode to undefined, got %#v", v.Bindings[1])
	}
}

func TestDecodeNestedExpression(t *testing.T) {
	fn := decodeOne(t, `(defun f (x y) (return (binary + (call g x) y)))`)
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("expected a return statement, got %#v", fn.Body[0])
	}
	bin, ok := ret.Value.(*ast.Binary)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected a binary +, got %#v", ret.Value)
	}
	call, ok := bin.Left.(*ast.Call)
	if !ok || len(call.Args) != 1 {
		t.Fatalf("expected a one-arg call on the left, got %#v", bin.Left)
	}
}

func TestDecodeControlFlowShapes(t *testing.T) {
	src := `(defun f (x)
		(if (binary < x 0) (return 0) (return 1))
		(for (var (i 0)) (binary < i 10) (unary-postfix ++ i) (continue))
		(for-in k x (break))
		(while (binary < x 10) (assign += x 1))
		(do (assign += x 1) (while (binary < x 10)))
		(try (body (throw "boom")) (catch err (return err)) (finally (debugger)))
		(switch x (case 1 (break)) (default (break))))`
	fn := decodeOne(t, src)
	if len(fn.Body) != 7 {
		t.Fatalf("expected 7 top-level statements, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.If); !ok {
		t.Errorf("statement 0 should be an if, got %#v", fn.Body[0])
	}
	forNode, ok := fn.Body[1].(*ast.For)
	if !ok || forNode.Init == nil || forNode.Cond == nil || forNode.Post == nil {
		t.Errorf("statement 1 should be a fully-specified for, got %#v", fn.Body[1])
	}
	forIn, ok := fn.Body[2].(*ast.ForIn)
	if !ok {
		t.Fatalf("statement 2 should be a for-in, got %#v", fn.Body[2])
	}
	if name, ok := forIn.Var.(*ast.Name); !ok || name.Ident != "k" {
		t.Errorf("for-in declarator should decode as a bare name, got %#v", forIn.Var)
	}
	if _, ok := fn.Body[3].(*ast.While); !ok {
		t.Errorf("statement 3 should be a while, got %#v", fn.Body[3])
	}
	if _, ok := fn.Body[4].(*ast.Do); !ok {
		t.Errorf("statement 4 should be a do/while, got %#v", fn.Body[4])
	}
	try, ok := fn.Body[5].(*ast.Try)
	if !ok || !try.HasCatch || !try.HasFinally || try.CatchParam != "err" {
		t.Errorf("statement 5 should be a try with a named catch and finally, got %#v", fn.Body[5])
	}
	sw, ok := fn.Body[6].(*ast.Switch)
	if !ok || len(sw.Cases) != 2 || sw.Cases[1].Test != nil {
		t.Errorf("statement 6 should be a two-arm switch ending in default, got %#v", fn.Body[6])
	}
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	_, err := Decode(`(defun f () (bogus 1 2))`)
	if err == nil {
		t.Fatal("expected an error for an unknown node tag")
	}
}

func TestDecodeRejectsNonDefunTopLevel(t *testing.T) {
	_, err := Decode(`(return 1)`)
	if err == nil {
		t.Fatal("expected an error for a non-defun top-level form")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := `(defun f (x) (var (a (binary + x 1))) (if (binary < a 10) (return a) (return 0)))`
	fn := decodeOne(t, src)
	out := Encode([]Function{fn})

	fn2 := decodeOne(t, out)
	out2 := Encode([]Function{fn2})

	if out != out2 {
		t.Errorf("re-encoding a decoded program should be stable:\nfirst:  %s\nsecond: %s", out, out2)
	}
	if !strings.Contains(out, "(binary + x 1)") {
		t.Errorf("round-tripped output lost the initializer: %s", out)
	}
}

func TestEncodeOmitsUndefinedInitializer(t *testing.T) {
	fn := Function{Name: "f", Body: []ast.Node{
		&ast.Var{Bindings: []ast.Binding{{Name: "a", Init: ast.Undefined()}}},
	}}
	out := Encode([]Function{fn})
	if !strings.Contains(out, "(var (a))") {
		t.Errorf("an undefined initializer should be omitted from output, got: %s", out)
	}
}
