package ast

import "testing"

func TestIsSimple(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"name", &Name{Ident: "x"}, true},
		{"num", &Num{Value: 1}, true},
		{"string", &String{Value: "s"}, true},
		{"binary", &Binary{Op: "+", Left: &Num{Value: 1}, Right: &Num{Value: 2}}, true},
		{"sub", &Sub{Object: &Name{Ident: "a"}, Index: &Num{Value: 0}}, true},
		{"call", &Call{Callee: &Name{Ident: "f"}}, false},
		{"assign", &Assign{Op: "=", Target: &Name{Ident: "a"}, Value: &Num{Value: 1}}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		if got := IsSimple(tt.node); got != tt.want {
			t.Errorf("IsSimple(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsControlFlow(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"return", &Return{}, true},
		{"call", &Call{Callee: &Name{Ident: "f"}}, true},
		{"label", &Label{Name: "l", Body: &Block{}}, true},
		{"name", &Name{Ident: "x"}, false},
		{"binary", &Binary{Op: "+"}, false},
	}
	for _, tt := range tests {
		if got := IsControlFlow(tt.node); got != tt.want {
			t.Errorf("IsControlFlow(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUndefinedIsNamedUndefined(t *testing.T) {
	u := Undefined()
	if u.Ident != "undefined" {
		t.Errorf("Undefined().Ident = %q, want %q", u.Ident, "undefined")
	}
}

func TestFunctionKindDependsOnDefun(t *testing.T) {
	fn := &Function{Name: "f"}
	if fn.Kind() != KindFunction {
		t.Errorf("non-defun Function.Kind() = %v, want %v", fn.Kind(), KindFunction)
	}
	fn.Defun = true
	if fn.Kind() != KindDefun {
		t.Errorf("defun Function.Kind() = %v, want %v", fn.Kind(), KindDefun)
	}
}
