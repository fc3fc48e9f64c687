package ast

// Clone deep-copies a node. The rewrite passes use it whenever an
// initializer expression is spliced into more than one slot (mutual
// collapse among eliminated variables, substitution at every use site)
// so that downstream passes never rely on, or accidentally mutate
// through, shared pointer identity (§4.8).
func Clone(n Node) Node {
	switch v := n.(type) {
	case nil:
		return nil
	case *Var:
		bindings := make([]Binding, len(v.Bindings))
		for i, b := range v.Bindings {
			bindings[i] = Binding{Name: b.Name, Init: Clone(b.Init)}
		}
		return &Var{Bindings: bindings}
	case *Name:
		c := *v
		return &c
	case *Num:
		c := *v
		return &c
	case *String:
		c := *v
		return &c
	case *Binary:
		return &Binary{Op: v.Op, Left: Clone(v.Left), Right: Clone(v.Right)}
	case *Sub:
		return &Sub{Object: Clone(v.Object), Index: Clone(v.Index)}
	case *Assign:
		return &Assign{Op: v.Op, Target: Clone(v.Target), Value: Clone(v.Value)}
	case *UnaryPrefix:
		return &UnaryPrefix{Op: v.Op, Operand: Clone(v.Operand)}
	case *UnaryPostfix:
		return &UnaryPostfix{Op: v.Op, Operand: Clone(v.Operand)}
	case *Call:
		return &Call{Callee: Clone(v.Callee), Args: cloneList(v.Args)}
	case *New:
		return &New{Callee: Clone(v.Callee), Args: cloneList(v.Args)}
	case *If:
		return &If{Cond: Clone(v.Cond), Then: Clone(v.Then), Else: Clone(v.Else)}
	case *Switch:
		cases := make([]Case, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = Case{Test: Clone(c.Test), Body: cloneList(c.Body)}
		}
		return &Switch{Discriminant: Clone(v.Discriminant), Cases: cases}
	case *Try:
		return &Try{
			Body:       cloneList(v.Body),
			CatchParam: v.CatchParam,
			Catch:      cloneList(v.Catch),
			HasCatch:   v.HasCatch,
			Finally:    cloneList(v.Finally),
			HasFinally: v.HasFinally,
		}
	case *Do:
		return &Do{Body: cloneList(v.Body), Cond: Clone(v.Cond)}
	case *While:
		return &While{Cond: Clone(v.Cond), Body: cloneList(v.Body)}
	case *For:
		return &For{Init: Clone(v.Init), Cond: Clone(v.Cond), Post: Clone(v.Post), Body: cloneList(v.Body)}
	case *ForIn:
		return &ForIn{Var: Clone(v.Var), Object: Clone(v.Object), Body: cloneList(v.Body)}
	case *Function:
		params := make([]string, len(v.Params))
		copy(params, v.Params)
		return &Function{Name: v.Name, Params: params, Body: cloneList(v.Body), Defun: v.Defun}
	case *With:
		return &With{Object: Clone(v.Object), Body: Clone(v.Body)}
	case *Return:
		return &Return{Value: Clone(v.Value)}
	case *Break:
		c := *v
		return &c
	case *Continue:
		c := *v
		return &c
	case *Throw:
		return &Throw{Value: Clone(v.Value)}
	case *Label:
		return &Label{Name: v.Name, Body: Clone(v.Body)}
	case *Debugger:
		c := *v
		return &c
	case *Block:
		return &Block{Body: cloneList(v.Body)}
	default:
		return n
	}
}

func cloneList(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = Clone(n)
	}
	return out
}
