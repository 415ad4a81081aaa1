// Package dsl parses the string_expr constraint language used by
// Stage-A contracts into an AST. Parsing confirms syntactic
// well-formedness only; expressions are never evaluated.
package dsl

import "fmt"

// Node is one node of a parsed expression tree.
type Node interface {
	node()
}

// LogicalOp is the operator of a Logical node.
type LogicalOp string

const (
	OpAnd LogicalOp = "AND"
	OpOr  LogicalOp = "OR"
	OpNot LogicalOp = "NOT"
)

// Identifier is a bare parameter or artifact name.
type Identifier struct {
	Name string
}

// LiteralKind distinguishes the literal operand forms.
type LiteralKind string

const (
	LiteralNumber LiteralKind = "number"
	LiteralBool   LiteralKind = "bool"
	LiteralString LiteralKind = "string"
)

// Literal is a numeric, boolean or single-quoted string constant.
type Literal struct {
	Kind  LiteralKind
	Value string // source text, quotes stripped for strings
}

// Group is a parenthesized sub-expression.
type Group struct {
	Inner Node
}

// Comparison is a binary comparison such as `strength >= 0.0`.
type Comparison struct {
	Left  Node
	Op    string // ==, !=, >, >=, <, <=
	Right Node
}

// Logical is an AND/OR chain or a unary NOT.
// AND and OR carry two or more operands in source order; NOT carries one.
type Logical struct {
	Op       LogicalOp
	Operands []Node
}

// Implication is `antecedent => consequent`.
type Implication struct {
	Antecedent Node
	Consequent Node
}

func (*Identifier) node()  {}
func (*Literal) node()     {}
func (*Group) node()       {}
func (*Comparison) node()  {}
func (*Logical) node()     {}
func (*Implication) node() {}

// SyntaxError describes why an expression failed to parse.
type SyntaxError struct {
	Pos int // byte offset into the expression
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Identifiers collects the identifier names referenced by the tree in
// first-appearance order, without duplicates.
func Identifiers(n Node) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *Identifier:
			if !seen[v.Name] {
				seen[v.Name] = true
				names = append(names, v.Name)
			}
		case *Literal:
		case *Group:
			walk(v.Inner)
		case *Comparison:
			walk(v.Left)
			walk(v.Right)
		case *Logical:
			for _, op := range v.Operands {
				walk(op)
			}
		case *Implication:
			walk(v.Antecedent)
			walk(v.Consequent)
		}
	}
	if n != nil {
		walk(n)
	}
	return names
}
