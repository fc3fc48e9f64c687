package sexpr

import "fmt"

// cell is either an atom (sym/num/string, distinguished by kind) or a
// list of child cells. It is the intermediate form between the token
// stream and the ast.Node tree: a parser has no notion yet of which
// shape each form should decode into, so it simply groups parens.
type cell struct {
	kind     tokenKind // tokenSymbol, tokenNumber, tokenString, or tokenLParen for a list
	text     string
	line     int
	children []*cell
}

func (c *cell) isList() bool { return c.kind == tokenLParen }

func (c *cell) isAtom(sym string) bool {
	return c.kind == tokenSymbol && c.text == sym
}

// parseAll reads every top-level form in input.
func parseAll(input string) ([]*cell, error) {
	l := newLexer(input)
	var forms []*cell
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return forms, nil
		}
		if tok.kind != tokenLParen {
			return nil, fmt.Errorf("sexpr: expected top-level form on line %d, found %q", tok.line, tok.text)
		}
		c, err := parseList(l, tok.line)
		if err != nil {
			return nil, err
		}
		forms = append(forms, c)
	}
}

func parseList(l *lexer, openLine int) (*cell, error) {
	c := &cell{kind: tokenLParen, line: openLine}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF:
			return nil, fmt.Errorf("sexpr: unterminated list opened on line %d", openLine)
		case tokenRParen:
			return c, nil
		case tokenLParen:
			child, err := parseList(l, tok.line)
			if err != nil {
				return nil, err
			}
			c.children = append(c.children, child)
		default:
			c.children = append(c.children, &cell{kind: tok.kind, text: tok.text, line: tok.line})
		}
	}
}

func (c *cell) errf(format string, args ...any) error {
	return fmt.Errorf("sexpr: line %d: %s", c.line, fmt.Sprintf(format, args...))
}

// head returns the leading symbol of a list cell, used to dispatch on
// node shape during decoding.
func (c *cell) head() (string, error) {
	if !c.isList() || len(c.children) == 0 {
		return "", c.errf("expected a tagged form")
	}
	first := c.children[0]
	if first.kind != tokenSymbol {
		return "", first.errf("expected a tag symbol, found %q", first.text)
	}
	return first.text, nil
}

// args returns the children of a list cell after its leading tag.
func (c *cell) args() []*cell {
	if !c.isList() || len(c.children) == 0 {
		return nil
	}
	return c.children[1:]
}
