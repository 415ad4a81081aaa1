package dsl

import "strings"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokBool
	tokLParen
	tokRParen
	tokNot     // !
	tokCompare // == != > >= < <=
	tokAnd     // &&
	tokOr      // ||
	tokImplies // =>
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits an expression into tokens. The only error modes are an
// unknown character and an unterminated string literal.
func lex(input string) ([]token, *SyntaxError) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == '&':
			if i+1 < len(input) && input[i+1] == '&' {
				toks = append(toks, token{tokAnd, "&&", i})
				i += 2
			} else {
				return nil, &SyntaxError{Pos: i, Msg: "single '&', expected '&&'"}
			}
		case c == '|':
			if i+1 < len(input) && input[i+1] == '|' {
				toks = append(toks, token{tokOr, "||", i})
				i += 2
			} else {
				return nil, &SyntaxError{Pos: i, Msg: "single '|', expected '||'"}
			}
		case c == '=':
			switch {
			case i+1 < len(input) && input[i+1] == '=':
				toks = append(toks, token{tokCompare, "==", i})
				i += 2
			case i+1 < len(input) && input[i+1] == '>':
				toks = append(toks, token{tokImplies, "=>", i})
				i += 2
			default:
				return nil, &SyntaxError{Pos: i, Msg: "single '=', expected '==' or '=>'"}
			}
		case c == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokCompare, "!=", i})
				i += 2
			} else {
				toks = append(toks, token{tokNot, "!", i})
				i++
			}
		case c == '>' || c == '<':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{tokCompare, input[i : i+2], i})
				i += 2
			} else {
				toks = append(toks, token{tokCompare, string(c), i})
				i++
			}
		case c == '\'':
			end := strings.IndexByte(input[i+1:], '\'')
			if end < 0 {
				return nil, &SyntaxError{Pos: i, Msg: "unterminated string literal"}
			}
			toks = append(toks, token{tokString, input[i+1 : i+1+end], i})
			i += end + 2
		case c >= '0' && c <= '9' || c == '-' && i+1 < len(input) && isDigit(input[i+1]):
			start := i
			if c == '-' {
				i++
			}
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			if i < len(input) && input[i] == '.' && i+1 < len(input) && isDigit(input[i+1]) {
				i++
				for i < len(input) && isDigit(input[i]) {
					i++
				}
			}
			toks = append(toks, token{tokNumber, input[start:i], start})
		case isIdentStart(c):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			word := input[start:i]
			if word == "true" || word == "false" {
				toks = append(toks, token{tokBool, word, start})
			} else {
				toks = append(toks, token{tokIdent, word, start})
			}
		default:
			return nil, &SyntaxError{Pos: i, Msg: "unknown character " + quoteByte(c)}
		}
	}
	toks = append(toks, token{tokEOF, "", len(input)})
	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '.'
}

func quoteByte(c byte) string {
	return "'" + string(c) + "'"
}
