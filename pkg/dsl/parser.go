package dsl

// Parse parses one constraint/condition expression and returns its AST.
// Precedence, tightest first: grouping, unary !, comparison, &&, ||, =>.
// AND/OR are left-associative; => is right-leaning but a bare chain
// (`a => b => c`) is rejected — nest with parentheses instead.
// A malformed expression yields exactly one *SyntaxError; no partial
// tree is ever returned.
func Parse(input string) (Node, error) {
	toks, lerr := lex(input)
	if lerr != nil {
		return nil, lerr
	}
	if toks[0].kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	p := &parser{toks: toks}
	n, err := p.parseImplication()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		t := p.peek()
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + describe(t)}
	}
	return n, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) parseImplication() (Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokImplies {
		return left, nil
	}
	p.next()
	right, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind == tokImplies {
		return nil, &SyntaxError{Pos: t.pos, Msg: "chained '=>' requires grouping"}
	}
	return &Implication{Antecedent: left, Consequent: right}, nil
}

func (p *parser) parseOr() (Node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokOr {
		return first, nil
	}
	operands := []Node{first}
	for p.peek().kind == tokOr {
		p.next()
		n, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}
	return &Logical{Op: OpOr, Operands: operands}, nil
}

func (p *parser) parseAnd() (Node, error) {
	first, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokAnd {
		return first, nil
	}
	operands := []Node{first}
	for p.peek().kind == tokAnd {
		p.next()
		n, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}
	return &Logical{Op: OpAnd, Operands: operands}, nil
}

func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCompare {
		return left, nil
	}
	op := p.next()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	// Comparisons are non-associative: a < b < c is malformed.
	if t := p.peek(); t.kind == tokCompare {
		return nil, &SyntaxError{Pos: t.pos, Msg: "chained comparison"}
	}
	return &Comparison{Left: left, Op: op.text, Right: right}, nil
}

func (p *parser) parseUnary() (Node, error) {
	if p.peek().kind == tokNot {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Logical{Op: OpNot, Operands: []Node{inner}}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokLParen:
		inner, err := p.parseImplication()
		if err != nil {
			return nil, err
		}
		if c := p.peek(); c.kind != tokRParen {
			return nil, &SyntaxError{Pos: c.pos, Msg: "missing ')'"}
		}
		p.next()
		return &Group{Inner: inner}, nil
	case tokIdent:
		return &Identifier{Name: t.text}, nil
	case tokNumber:
		return &Literal{Kind: LiteralNumber, Value: t.text}, nil
	case tokBool:
		return &Literal{Kind: LiteralBool, Value: t.text}, nil
	case tokString:
		return &Literal{Kind: LiteralString, Value: t.text}, nil
	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected end of expression"}
	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected " + describe(t)}
	}
}

func describe(t token) string {
	if t.kind == tokEOF {
		return "end of expression"
	}
	return "'" + t.text + "'"
}
