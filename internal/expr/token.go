// Package expr implements the infix tokenizer, shunting-yard
// algorithm, and RPN evaluator used by relative stats' formula
// bundles (spec.md §4.1).
package expr

import "fmt"

// TokenKind enumerates every token the lexer can produce. Operator
// kinds are given their literal byte value so precedence/operator
// lookups can switch directly on the kind.
type TokenKind byte

const (
	Number   TokenKind = 0x82
	Variable TokenKind = 0x83
	LParen   TokenKind = '('
	RParen   TokenKind = ')'
	Plus     TokenKind = '+'
	Minus    TokenKind = '-'
	Star     TokenKind = '*'
	Slash    TokenKind = '/'
	Percent  TokenKind = '%'
	Equal    TokenKind = '='
	Less     TokenKind = '<'
	More     TokenKind = '>'
	And      TokenKind = '&'
	Or       TokenKind = '|'
	LessEq   TokenKind = 0x80
	MoreEq   TokenKind = 0x81
)

// Token is a single lexed unit: a literal number, a variable name, or
// an operator/parenthesis.
type Token struct {
	Kind    TokenKind
	Literal string  // raw text; variable name when Kind == Variable
	Number  float64 // populated when Kind == Number
}

func (t Token) String() string {
	if t.Kind == Number {
		return fmt.Sprintf("%g", t.Number)
	}
	return t.Literal
}

var precedence = map[TokenKind]int{
	Equal:  5,
	Less:   4,
	More:   4,
	LessEq: 4,
	MoreEq: 4,
	Star:   3,
	Slash:  3,
	Percent: 3,
	Plus:   2,
	Minus:  2,
	And:    1,
	Or:     1,
}

func isOperator(k TokenKind) bool {
	_, ok := precedence[k]
	return ok
}
