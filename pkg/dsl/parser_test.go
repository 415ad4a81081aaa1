package dsl

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseValidExpressions(t *testing.T) {
	exprs := []string{
		"strength >= 0.0 && strength <= 1.0",
		"mode == 'auto' || mode == 'manual'",
		"enabled == true",
		"!enabled",
		"!(enabled && strength > 0.5)",
		"shot_type == 0.85",
		"a != b",
		"x < 10 && y > -2.5 || z == 0",
		"(a == 1 || b == 2) && c != 3",
		"edge_mask_ready == true => strength > 0.0",
		"(a => b) && c",
		"a => (b => c)",
		"gamma.lift > 0.1",
		"true",
		"'warm' == palette_bias",
	}
	for _, e := range exprs {
		if _, err := Parse(e); err != nil {
			t.Errorf("Parse(%q) failed: %v", e, err)
		}
	}
}

func TestParseInvalidExpressions(t *testing.T) {
	cases := []struct {
		expr string
		want string // substring of the error message
	}{
		{"", "empty expression"},
		{"   ", "empty expression"},
		{"(a == 1", "missing ')'"},
		{"a == 1)", "unexpected ')'"},
		{"a ==", "unexpected end of expression"},
		{"&& a", "unexpected '&&'"},
		{"a b", "unexpected 'b'"},
		{"a == = b", "single '='"},
		{"a @ b", "unknown character"},
		{"a & b", "single '&'"},
		{"a | b", "single '|'"},
		{"a < b < c", "chained comparison"},
		{"a => b => c", "chained '=>'"},
		{"mode == 'auto", "unterminated string"},
		{"!", "unexpected end of expression"},
	}
	for _, tc := range cases {
		n, err := Parse(tc.expr)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want error containing %q", tc.expr, tc.want)
			continue
		}
		if n != nil {
			t.Errorf("Parse(%q) returned a partial tree alongside an error", tc.expr)
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse(%q) error is %T, want *SyntaxError", tc.expr, err)
			continue
		}
		if !strings.Contains(serr.Msg, tc.want) {
			t.Errorf("Parse(%q) = %q, want substring %q", tc.expr, serr.Msg, tc.want)
		}
	}
}

func TestParsePrecedence(t *testing.T) {
	// a == 1 || b == 2 && c == 3 parses as OR(cmp, AND(cmp, cmp)).
	n, err := Parse("a == 1 || b == 2 && c == 3")
	if err != nil {
		t.Fatal(err)
	}
	or, ok := n.(*Logical)
	if !ok || or.Op != OpOr {
		t.Fatalf("root = %#v, want OR", n)
	}
	if len(or.Operands) != 2 {
		t.Fatalf("OR operand count = %d, want 2", len(or.Operands))
	}
	and, ok := or.Operands[1].(*Logical)
	if !ok || and.Op != OpAnd {
		t.Fatalf("second OR operand = %#v, want AND", or.Operands[1])
	}

	// Implication binds loosest.
	n, err = Parse("a && b => c || d")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := n.(*Implication); !ok {
		t.Fatalf("root = %#v, want Implication", n)
	}
}

func TestIdentifiers(t *testing.T) {
	n, err := Parse("strength > 0.1 && mode == 'auto' => strength < 0.9 || enabled")
	if err != nil {
		t.Fatal(err)
	}
	got := Identifiers(n)
	want := []string{"strength", "mode", "enabled"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Identifiers = %v, want %v", got, want)
	}
}
