package sexpr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xyproto/varelim/internal/ast"
)

// Encode serializes a set of function forms back into the textual
// format Decode accepts, one (defun ...) per line group.
func Encode(fns []Function) string {
	var sb strings.Builder
	for i, fn := range fns {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("(defun ")
		sb.WriteString(fn.Name)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(fn.Params, " "))
		sb.WriteString(")")
		for _, stmt := range fn.Body {
			sb.WriteString("\n  ")
			writeNode(&sb, stmt, 1)
		}
		sb.WriteString(")")
	}
	return sb.String()
}

func writeNode(sb *strings.Builder, n ast.Node, depth int) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	switch v := n.(type) {
	case *ast.Num:
		sb.WriteString(strconv.FormatFloat(v.Value, 'g', -1, 64))
	case *ast.String:
		fmt.Fprintf(sb, "%q", v.Value)
	case *ast.Name:
		sb.WriteString(v.Ident)
	case *ast.Var:
		sb.WriteString("(var")
		for _, b := range v.Bindings {
			sb.WriteString(" (")
			sb.WriteString(b.Name)
			if name, ok := b.Init.(*ast.Name); !ok || name.Ident != "undefined" {
				sb.WriteString(" ")
				writeNode(sb, b.Init, depth)
			}
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case *ast.Binary:
		fmt.Fprintf(sb, "(binary %s ", v.Op)
		writeNode(sb, v.Left, depth)
		sb.WriteString(" ")
		writeNode(sb, v.Right, depth)
		sb.WriteString(")")
	case *ast.Sub:
		sb.WriteString("(sub ")
		writeNode(sb, v.Object, depth)
		sb.WriteString(" ")
		writeNode(sb, v.Index, depth)
		sb.WriteString(")")
	case *ast.Assign:
		fmt.Fprintf(sb, "(assign %s ", v.Op)
		writeNode(sb, v.Target, depth)
		sb.WriteString(" ")
		writeNode(sb, v.Value, depth)
		sb.WriteString(")")
	case *ast.UnaryPrefix:
		fmt.Fprintf(sb, "(unary-prefix %s ", v.Op)
		writeNode(sb, v.Operand, depth)
		sb.WriteString(")")
	case *ast.UnaryPostfix:
		fmt.Fprintf(sb, "(unary-postfix %s ", v.Op)
		writeNode(sb, v.Operand, depth)
		sb.WriteString(")")
	case *ast.Call:
		sb.WriteString("(call ")
		writeNode(sb, v.Callee, depth)
		for _, a := range v.Args {
			sb.WriteString(" ")
			writeNode(sb, a, depth)
		}
		sb.WriteString(")")
	case *ast.New:
		sb.WriteString("(new ")
		writeNode(sb, v.Callee, depth)
		for _, a := range v.Args {
			sb.WriteString(" ")
			writeNode(sb, a, depth)
		}
		sb.WriteString(")")
	case *ast.If:
		sb.WriteString("(if ")
		writeNode(sb, v.Cond, depth)
		sb.WriteString(" ")
		writeNode(sb, v.Then, depth)
		if v.Else != nil {
			sb.WriteString(" ")
			writeNode(sb, v.Else, depth)
		}
		sb.WriteString(")")
	case *ast.Switch:
		sb.WriteString("(switch ")
		writeNode(sb, v.Discriminant, depth)
		for _, c := range v.Cases {
			sb.WriteString(" (")
			if c.Test != nil {
				sb.WriteString("case ")
				writeNode(sb, c.Test, depth)
			} else {
				sb.WriteString("default")
			}
			for _, s := range c.Body {
				sb.WriteString(" ")
				writeNode(sb, s, depth)
			}
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case *ast.Try:
		sb.WriteString("(try (body")
		for _, s := range v.Body {
			sb.WriteString(" ")
			writeNode(sb, s, depth)
		}
		sb.WriteString(")")
		if v.HasCatch {
			sb.WriteString(" (catch")
			if v.CatchParam != "" {
				sb.WriteString(" ")
				sb.WriteString(v.CatchParam)
			}
			for _, s := range v.Catch {
				sb.WriteString(" ")
				writeNode(sb, s, depth)
			}
			sb.WriteString(")")
		}
		if v.HasFinally {
			sb.WriteString(" (finally")
			for _, s := range v.Finally {
				sb.WriteString(" ")
				writeNode(sb, s, depth)
			}
			sb.WriteString(")")
		}
		sb.WriteString(")")
	case *ast.Do:
		sb.WriteString("(do")
		for _, s := range v.Body {
			sb.WriteString(" ")
			writeNode(sb, s, depth)
		}
		sb.WriteString(" (while ")
		writeNode(sb, v.Cond, depth)
		sb.WriteString("))")
	case *ast.While:
		sb.WriteString("(while ")
		writeNode(sb, v.Cond, depth)
		for _, s := range v.Body {
			sb.WriteString(" ")
			writeNode(sb, s, depth)
		}
		sb.WriteString(")")
	case *ast.For:
		sb.WriteString("(for ")
		writeNodeOrNil(sb, v.Init, depth)
		sb.WriteString(" ")
		writeNodeOrNil(sb, v.Cond, depth)
		sb.WriteString(" ")
		writeNodeOrNil(sb, v.Post, depth)
		for _, s := range v.Body {
			sb.WriteString(" ")
			writeNode(sb, s, depth)
		}
		sb.WriteString(")")
	case *ast.ForIn:
		sb.WriteString("(for-in ")
		writeNode(sb, v.Var, depth)
		sb.WriteString(" ")
		writeNode(sb, v.Object, depth)
		for _, s := range v.Body {
			sb.WriteString(" ")
			writeNode(sb, s, depth)
		}
		sb.WriteString(")")
	case *ast.Function:
		tag := "function"
		if v.Defun {
			tag = "defun"
		}
		name := v.Name
		if name == "" {
			name = "nil"
		}
		fmt.Fprintf(sb, "(%s %s (%s)", tag, name, strings.Join(v.Params, " "))
		for _, s := range v.Body {
			sb.WriteString(" ")
			writeNode(sb, s, depth)
		}
		sb.WriteString(")")
	case *ast.With:
		sb.WriteString("(with ")
		writeNode(sb, v.Object, depth)
		sb.WriteString(" ")
		writeNode(sb, v.Body, depth)
		sb.WriteString(")")
	case *ast.Return:
		sb.WriteString("(return")
		if v.Value != nil {
			sb.WriteString(" ")
			writeNode(sb, v.Value, depth)
		}
		sb.WriteString(")")
	case *ast.Break:
		sb.WriteString("(break")
		if v.Label != "" {
			sb.WriteString(" " + v.Label)
		}
		sb.WriteString(")")
	case *ast.Continue:
		sb.WriteString("(continue")
		if v.Label != "" {
			sb.WriteString(" " + v.Label)
		}
		sb.WriteString(")")
	case *ast.Throw:
		sb.WriteString("(throw ")
		writeNode(sb, v.Value, depth)
		sb.WriteString(")")
	case *ast.Label:
		sb.WriteString("(label " + v.Name + " ")
		writeNode(sb, v.Body, depth)
		sb.WriteString(")")
	case *ast.Debugger:
		sb.WriteString("(debugger)")
	case *ast.Block:
		sb.WriteString("(block")
		for _, s := range v.Body {
			sb.WriteString(" ")
			writeNode(sb, s, depth)
		}
		sb.WriteString(")")
	default:
		sb.WriteString("(unknown)")
	}
}

func writeNodeOrNil(sb *strings.Builder, n ast.Node, depth int) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	writeNode(sb, n, depth)
}
