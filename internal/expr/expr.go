// Package expr compiles and evaluates the arithmetic expressions behind
// computed report columns. An expression references data columns by
// 1-based position (1 = first declared category of the chart) and
// combines them with + - * / and parentheses.
//
// Column references are validated at compile time: a position outside
// [1, column count] is a configuration error, not a silent zero.
// Division by zero at evaluation time yields an undefined value instead
// of an error, so a row still renders when a category has zero lines.
package expr

import (
	"fmt"
	"strconv"
	"unicode"
)

// Value is one evaluation result or operand. The zero Value is the
// undefined sentinel; undefined operands propagate through every
// operator.
type Value struct {
	Defined bool
	Number  float64
}

// Undefined returns the undefined sentinel.
func Undefined() Value {
	return Value{}
}

// Number wraps a defined numeric value.
func Number(n float64) Value {
	return Value{Defined: true, Number: n}
}

// Program is a compiled column expression, safe for repeated and
// concurrent evaluation.
type Program struct {
	source string
	root   node
}

// Compile parses and validates an expression against the number of data
// columns available in the target chart.
func Compile(expression string, columnCount int) (*Program, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty column expression")
	}

	parser := &parser{source: expression, tokens: tokens, columnCount: columnCount}
	root, err := parser.parseExpression()
	if err != nil {
		return nil, err
	}
	if !parser.atEnd() {
		return nil, fmt.Errorf("unexpected %q in expression %q", parser.peek().text, expression)
	}

	return &Program{source: expression, root: root}, nil
}

// Source returns the original expression text.
func (p *Program) Source() string {
	return p.source
}

// Eval evaluates the program over one row of column values. The row
// must hold exactly the column count the program was compiled against,
// in declaration order.
func (p *Program) Eval(row []Value) Value {
	return p.root.eval(row)
}

type node interface {
	eval(row []Value) Value
}

// columnNode resolves a 1-based column reference against the row.
type columnNode struct {
	index int
}

func (n columnNode) eval(row []Value) Value {
	return row[n.index-1]
}

// negateNode is unary minus.
type negateNode struct {
	operand node
}

func (n negateNode) eval(row []Value) Value {
	value := n.operand.eval(row)
	if !value.Defined {
		return Undefined()
	}
	return Number(-value.Number)
}

// binaryNode applies one arithmetic operator.
type binaryNode struct {
	operator rune
	left     node
	right    node
}

func (n binaryNode) eval(row []Value) Value {
	left := n.left.eval(row)
	right := n.right.eval(row)
	if !left.Defined || !right.Defined {
		return Undefined()
	}

	switch n.operator {
	case '+':
		return Number(left.Number + right.Number)
	case '-':
		return Number(left.Number - right.Number)
	case '*':
		return Number(left.Number * right.Number)
	default:
		if right.Number == 0 {
			return Undefined()
		}
		return Number(left.Number / right.Number)
	}
}

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenOperator
	tokenOpenParen
	tokenCloseParen
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits the expression into column numbers, operators and
// parentheses. Whitespace separates tokens; anything else is rejected.
func tokenize(expression string) ([]token, error) {
	var tokens []token
	runes := []rune(expression)

	for idx := 0; idx < len(runes); {
		current := runes[idx]

		if unicode.IsSpace(current) {
			idx++
			continue
		}

		if unicode.IsDigit(current) {
			start := idx
			for idx < len(runes) && unicode.IsDigit(runes[idx]) {
				idx++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: string(runes[start:idx])})
			continue
		}

		switch current {
		case '+', '-', '*', '/':
			tokens = append(tokens, token{kind: tokenOperator, text: string(current)})
		case '(':
			tokens = append(tokens, token{kind: tokenOpenParen, text: "("})
		case ')':
			tokens = append(tokens, token{kind: tokenCloseParen, text: ")"})
		default:
			return nil, fmt.Errorf("unexpected character %q in expression %q", string(current), expression)
		}
		idx++
	}

	return tokens, nil
}

type parser struct {
	source      string
	tokens      []token
	position    int
	columnCount int
}

func (p *parser) atEnd() bool {
	return p.position >= len(p.tokens)
}

func (p *parser) peek() token {
	return p.tokens[p.position]
}

func (p *parser) advance() token {
	tok := p.tokens[p.position]
	p.position++
	return tok
}

// parseExpression handles + and -, the lowest precedence level.
func (p *parser) parseExpression() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for !p.atEnd() && p.peek().kind == tokenOperator &&
		(p.peek().text == "+" || p.peek().text == "-") {
		operator := rune(p.advance().text[0])
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binaryNode{operator: operator, left: left, right: right}
	}

	return left, nil
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for !p.atEnd() && p.peek().kind == tokenOperator &&
		(p.peek().text == "*" || p.peek().text == "/") {
		operator := rune(p.advance().text[0])
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = binaryNode{operator: operator, left: left, right: right}
	}

	return left, nil
}

// parseFactor handles column references, parenthesized groups and unary
// minus.
func (p *parser) parseFactor() (node, error) {
	if p.atEnd() {
		return nil, fmt.Errorf("unexpected end of expression %q", p.source)
	}

	tok := p.advance()

	switch tok.kind {
	case tokenNumber:
		index, err := strconv.Atoi(tok.text)
		if err != nil {
			return nil, fmt.Errorf("invalid column reference %q in expression %q", tok.text, p.source)
		}
		if index < 1 || index > p.columnCount {
			return nil, fmt.Errorf(
				"column reference %d out of range [1, %d] in expression %q",
				index, p.columnCount, p.source,
			)
		}
		return columnNode{index: index}, nil

	case tokenOpenParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.atEnd() || p.peek().kind != tokenCloseParen {
			return nil, fmt.Errorf("missing closing parenthesis in expression %q", p.source)
		}
		p.advance()
		return inner, nil

	case tokenOperator:
		if tok.text == "-" {
			operand, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			return negateNode{operand: operand}, nil
		}
	}

	return nil, fmt.Errorf("unexpected %q in expression %q", tok.text, p.source)
}
