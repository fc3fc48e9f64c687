package sexpr

import (
	"strconv"

	"github.com/xyproto/varelim/internal/ast"
)

// Function is one top-level form decoded from a program: a name, its
// parameter list, and its statement body — the unit the driver hands
// to elim.Eliminate one at a time (§5: "run on one function body at a
// time").
type Function struct {
	Name   string
	Params []string
	Body   []ast.Node
}

// Decode parses a textual program into its top-level function forms.
func Decode(input string) ([]Function, error) {
	forms, err := parseAll(input)
	if err != nil {
		return nil, err
	}
	fns := make([]Function, 0, len(forms))
	for _, f := range forms {
		head, err := f.head()
		if err != nil {
			return nil, err
		}
		if head != "defun" {
			return nil, f.errf("expected top-level (defun ...) form, found %q", head)
		}
		fn, err := decodeDefun(f)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func decodeDefun(c *cell) (Function, error) {
	args := c.args()
	if len(args) < 2 {
		return Function{}, c.errf("defun requires a name and a parameter list")
	}
	nameCell := args[0]
	if nameCell.kind != tokenSymbol {
		return Function{}, nameCell.errf("defun name must be a symbol")
	}
	paramsCell := args[1]
	if !paramsCell.isList() {
		return Function{}, paramsCell.errf("defun parameter list must be a list")
	}
	var params []string
	for _, p := range paramsCell.children {
		if p.kind != tokenSymbol {
			return Function{}, p.errf("parameter name must be a symbol")
		}
		params = append(params, p.text)
	}
	body, err := decodeStmts(args[2:])
	if err != nil {
		return Function{}, err
	}
	return Function{Name: nameCell.text, Params: params, Body: body}, nil
}

func decodeStmts(cells []*cell) ([]ast.Node, error) {
	body := make([]ast.Node, 0, len(cells))
	for _, c := range cells {
		n, err := decodeNode(c)
		if err != nil {
			return nil, err
		}
		body = append(body, n)
	}
	return body, nil
}

func decodeNode(c *cell) (ast.Node, error) {
	switch c.kind {
	case tokenNumber:
		v, err := strconv.ParseFloat(c.text, 64)
		if err != nil {
			return nil, c.errf("malformed number %q", c.text)
		}
		return &ast.Num{Value: v}, nil
	case tokenString:
		return &ast.String{Value: c.text}, nil
	case tokenSymbol:
		return &ast.Name{Ident: c.text}, nil
	}

	head, err := c.head()
	if err != nil {
		return nil, err
	}
	args := c.args()

	switch head {
	case "var":
		return decodeVar(c, args)
	case "binary":
		return decodeBinary(c, args)
	case "sub":
		return decodeSub(c, args)
	case "assign":
		return decodeAssign(c, args)
	case "unary-prefix":
		return decodeUnary(c, args, true)
	case "unary-postfix":
		return decodeUnary(c, args, false)
	case "call":
		return decodeCallLike(c, args, false)
	case "new":
		return decodeCallLike(c, args, true)
	case "if":
		return decodeIf(c, args)
	case "switch":
		return decodeSwitch(c, args)
	case "try":
		return decodeTry(c, args)
	case "do":
		return decodeDo(c, args)
	case "while":
		return decodeWhile(c, args)
	case "for":
		return decodeFor(c, args)
	case "for-in":
		return decodeForIn(c, args)
	case "function", "defun":
		return decodeFunction(c, args, head == "defun")
	case "with":
		return decodeWith(c, args)
	case "return":
		return decodeOptValue(args, func(v ast.Node) ast.Node { return &ast.Return{Value: v} })
	case "throw":
		if len(args) != 1 {
			return nil, c.errf("throw requires exactly one argument")
		}
		v, err := decodeNode(args[0])
		if err != nil {
			return nil, err
		}
		return &ast.Throw{Value: v}, nil
	case "break":
		return decodeLabelJump(args, func(label string) ast.Node { return &ast.Break{Label: label} })
	case "continue":
		return decodeLabelJump(args, func(label string) ast.Node { return &ast.Continue{Label: label} })
	case "label":
		return decodeLabel(c, args)
	case "debugger":
		return &ast.Debugger{}, nil
	case "block":
		body, err := decodeStmts(args)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Body: body}, nil
	default:
		return nil, c.errf("unknown node tag %q", head)
	}
}

func decodeVar(c *cell, args []*cell) (ast.Node, error) {
	if len(args) == 0 {
		return nil, c.errf("var requires at least one binding")
	}
	bindings := make([]ast.Binding, 0, len(args))
	for _, b := range args {
		if !b.isList() || len(b.children) == 0 {
			return nil, b.errf("var binding must be (name [init])")
		}
		nameCell := b.children[0]
		if nameCell.kind != tokenSymbol {
			return nil, nameCell.errf("var binding name must be a symbol")
		}
		var init ast.Node
		if len(b.children) > 1 {
			n, err := decodeNode(b.children[1])
			if err != nil {
				return nil, err
			}
			init = n
		} else {
			init = ast.Undefined()
		}
		bindings = append(bindings, ast.Binding{Name: nameCell.text, Init: init})
	}
	return &ast.Var{Bindings: bindings}, nil
}

func decodeBinary(c *cell, args []*cell) (ast.Node, error) {
	if len(args) != 3 {
		return nil, c.errf("binary requires (binary op left right)")
	}
	if args[0].kind != tokenSymbol {
		return nil, args[0].errf("binary operator must be a symbol")
	}
	left, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	right, err := decodeNode(args[2])
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: args[0].text, Left: left, Right: right}, nil
}

func decodeSub(c *cell, args []*cell) (ast.Node, error) {
	if len(args) != 2 {
		return nil, c.errf("sub requires (sub object index)")
	}
	obj, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	idx, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	return &ast.Sub{Object: obj, Index: idx}, nil
}

func decodeAssign(c *cell, args []*cell) (ast.Node, error) {
	if len(args) != 3 {
		return nil, c.errf("assign requires (assign op target value)")
	}
	if args[0].kind != tokenSymbol {
		return nil, args[0].errf("assign operator must be a symbol")
	}
	target, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	value, err := decodeNode(args[2])
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Op: args[0].text, Target: target, Value: value}, nil
}

func decodeUnary(c *cell, args []*cell, prefix bool) (ast.Node, error) {
	if len(args) != 2 {
		return nil, c.errf("unary operator requires (op operand)")
	}
	if args[0].kind != tokenSymbol {
		return nil, args[0].errf("unary operator must be a symbol")
	}
	operand, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	if prefix {
		return &ast.UnaryPrefix{Op: args[0].text, Operand: operand}, nil
	}
	return &ast.UnaryPostfix{Op: args[0].text, Operand: operand}, nil
}

func decodeCallLike(c *cell, args []*cell, isNew bool) (ast.Node, error) {
	if len(args) == 0 {
		return nil, c.errf("call requires a callee")
	}
	callee, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	callArgs, err := decodeStmts(args[1:])
	if err != nil {
		return nil, err
	}
	if isNew {
		return &ast.New{Callee: callee, Args: callArgs}, nil
	}
	return &ast.Call{Callee: callee, Args: callArgs}, nil
}

func decodeIf(c *cell, args []*cell) (ast.Node, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, c.errf("if requires (if cond then [else])")
	}
	cond, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	then, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	n := &ast.If{Cond: cond, Then: then}
	if len(args) == 3 {
		els, err := decodeNode(args[2])
		if err != nil {
			return nil, err
		}
		n.Else = els
	}
	return n, nil
}

func decodeSwitch(c *cell, args []*cell) (ast.Node, error) {
	if len(args) < 1 {
		return nil, c.errf("switch requires a discriminant")
	}
	disc, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	n := &ast.Switch{Discriminant: disc}
	for _, cc := range args[1:] {
		if !cc.isList() || len(cc.children) == 0 {
			return nil, cc.errf("switch case must be (case test stmt...) or (default stmt...)")
		}
		tag := cc.children[0]
		var kase ast.Case
		var rest []*cell
		switch {
		case tag.isAtom("case"):
			if len(cc.children) < 2 {
				return nil, cc.errf("case requires a test expression")
			}
			test, err := decodeNode(cc.children[1])
			if err != nil {
				return nil, err
			}
			kase.Test = test
			rest = cc.children[2:]
		case tag.isAtom("default"):
			rest = cc.children[1:]
		default:
			return nil, tag.errf("expected case or default")
		}
		body, err := decodeStmts(rest)
		if err != nil {
			return nil, err
		}
		kase.Body = body
		n.Cases = append(n.Cases, kase)
	}
	return n, nil
}

func decodeTry(c *cell, args []*cell) (ast.Node, error) {
	n := &ast.Try{}
	for _, blk := range args {
		tag, err := blk.head()
		if err != nil {
			return nil, err
		}
		switch tag {
		case "body":
			body, err := decodeStmts(blk.args())
			if err != nil {
				return nil, err
			}
			n.Body = body
		case "catch":
			catchArgs := blk.args()
			if len(catchArgs) > 0 && catchArgs[0].kind == tokenSymbol {
				n.CatchParam = catchArgs[0].text
				catchArgs = catchArgs[1:]
			}
			body, err := decodeStmts(catchArgs)
			if err != nil {
				return nil, err
			}
			n.Catch = body
			n.HasCatch = true
		case "finally":
			body, err := decodeStmts(blk.args())
			if err != nil {
				return nil, err
			}
			n.Finally = body
			n.HasFinally = true
		default:
			return nil, blk.errf("expected body, catch, or finally")
		}
	}
	return n, nil
}

func decodeDo(c *cell, args []*cell) (ast.Node, error) {
	if len(args) == 0 {
		return nil, c.errf("do requires a trailing while-condition form")
	}
	condCell := args[len(args)-1]
	tag, err := condCell.head()
	if err != nil || tag != "while" {
		return nil, c.errf("do requires a final (while cond) form")
	}
	condArgs := condCell.args()
	if len(condArgs) != 1 {
		return nil, condCell.errf("while form requires exactly one condition")
	}
	cond, err := decodeNode(condArgs[0])
	if err != nil {
		return nil, err
	}
	body, err := decodeStmts(args[:len(args)-1])
	if err != nil {
		return nil, err
	}
	return &ast.Do{Body: body, Cond: cond}, nil
}

func decodeWhile(c *cell, args []*cell) (ast.Node, error) {
	if len(args) == 0 {
		return nil, c.errf("while requires a condition")
	}
	cond, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	body, err := decodeStmts(args[1:])
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

func decodeFor(c *cell, args []*cell) (ast.Node, error) {
	if len(args) < 3 {
		return nil, c.errf("for requires (for init cond post stmt...)")
	}
	n := &ast.For{}
	if !args[0].isAtom("nil") {
		init, err := decodeNode(args[0])
		if err != nil {
			return nil, err
		}
		n.Init = init
	}
	if !args[1].isAtom("nil") {
		cond, err := decodeNode(args[1])
		if err != nil {
			return nil, err
		}
		n.Cond = cond
	}
	if !args[2].isAtom("nil") {
		post, err := decodeNode(args[2])
		if err != nil {
			return nil, err
		}
		n.Post = post
	}
	body, err := decodeStmts(args[3:])
	if err != nil {
		return nil, err
	}
	n.Body = body
	return n, nil
}

func decodeForIn(c *cell, args []*cell) (ast.Node, error) {
	if len(args) < 2 {
		return nil, c.errf("for-in requires (for-in var object stmt...)")
	}
	declarator, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	object, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	body, err := decodeStmts(args[2:])
	if err != nil {
		return nil, err
	}
	return &ast.ForIn{Var: declarator, Object: object, Body: body}, nil
}

func decodeFunction(c *cell, args []*cell, defun bool) (ast.Node, error) {
	if len(args) < 2 {
		return nil, c.errf("function requires a name slot and a parameter list")
	}
	name := ""
	if args[0].kind == tokenSymbol && !args[0].isAtom("nil") {
		name = args[0].text
	}
	if !args[1].isList() {
		return nil, args[1].errf("function parameter list must be a list")
	}
	var params []string
	for _, p := range args[1].children {
		if p.kind != tokenSymbol {
			return nil, p.errf("parameter name must be a symbol")
		}
		params = append(params, p.text)
	}
	body, err := decodeStmts(args[2:])
	if err != nil {
		return nil, err
	}
	return &ast.Function{Name: name, Params: params, Body: body, Defun: defun}, nil
}

func decodeWith(c *cell, args []*cell) (ast.Node, error) {
	if len(args) != 2 {
		return nil, c.errf("with requires (with object body)")
	}
	obj, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	body, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	return &ast.With{Object: obj, Body: body}, nil
}

func decodeLabel(c *cell, args []*cell) (ast.Node, error) {
	if len(args) != 2 {
		return nil, c.errf("label requires (label name body)")
	}
	if args[0].kind != tokenSymbol {
		return nil, args[0].errf("label name must be a symbol")
	}
	body, err := decodeNode(args[1])
	if err != nil {
		return nil, err
	}
	return &ast.Label{Name: args[0].text, Body: body}, nil
}

func decodeOptValue(args []*cell, build func(ast.Node) ast.Node) (ast.Node, error) {
	if len(args) == 0 {
		return build(nil), nil
	}
	v, err := decodeNode(args[0])
	if err != nil {
		return nil, err
	}
	return build(v), nil
}

func decodeLabelJump(args []*cell, build func(string) ast.Node) (ast.Node, error) {
	if len(args) == 0 {
		return build(""), nil
	}
	if args[0].kind != tokenSymbol {
		return nil, args[0].errf("jump label must be a symbol")
	}
	return build(args[0].text), nil
}
