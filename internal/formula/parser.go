package formula

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/rxtech-lab/argo-formula/pkg/errors"
)

// Parse turns formula source text into an AST.
//
// Grammar, left-associative with the usual precedence:
//
//	expr    := term (('+' | '-') term)*
//	term    := factor (('*' | '/') factor)*
//	factor  := primary
//	primary := '(' expr ')' | number | identifier call?
//	call    := '(' (expr (',' expr)*)? ')'
//
// Offsets in a returned *errors.SyntaxError index into source as given, leading
// whitespace included. Parentheses and call arguments may nest at most MaxDepth
// levels. Parse is purely syntactic: unknown names are reported by the evaluator.
func Parse(source string) (Node, error) {
	p := &parser{src: source}

	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()

	if !p.eof() {
		return nil, p.syntaxError("operator or end of input")
	}

	return node, nil
}

// MaxDepth bounds nesting of parenthesised groups and call arguments.
const MaxDepth = 256

type parser struct {
	src   string
	pos   int
	depth int
}

// nested parses an expression one nesting level deeper.
func (p *parser) nested() (Node, error) {
	if p.depth >= MaxDepth {
		return nil, errors.NewSyntaxError(p.pos, "shallower nesting", p.found())
	}

	p.depth++
	defer func() { p.depth-- }()

	return p.parseExpr()
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) skipWhitespace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		default:
			return
		}
	}
}

// found describes the input at the current position for error messages.
func (p *parser) found() string {
	if p.eof() {
		return "end of input"
	}

	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])

	return fmt.Sprintf("'%c'", r)
}

func (p *parser) syntaxError(expected string) error {
	return errors.NewSyntaxError(p.pos, expected, p.found())
}

func (p *parser) expect(ch byte) error {
	p.skipWhitespace()

	if p.peek() != ch {
		return p.syntaxError(fmt.Sprintf("'%c'", ch))
	}

	p.pos++

	return nil
}

func (p *parser) parseExpr() (Node, error) {
	node, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		p.skipWhitespace()

		op := p.peek()
		if op != '+' && op != '-' {
			return node, nil
		}

		p.pos++

		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		node = &BinaryNode{Op: op, Left: node, Right: rhs}
	}
}

func (p *parser) parseTerm() (Node, error) {
	node, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		p.skipWhitespace()

		op := p.peek()
		if op != '*' && op != '/' {
			return node, nil
		}

		p.pos++

		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}

		node = &BinaryNode{Op: op, Left: node, Right: rhs}
	}
}

func (p *parser) parseFactor() (Node, error) {
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	p.skipWhitespace()

	if p.eof() {
		return nil, p.syntaxError("expression")
	}

	ch := p.peek()

	switch {
	case ch == '(':
		p.pos++

		node, err := p.nested()
		if err != nil {
			return nil, err
		}

		if err := p.expect(')'); err != nil {
			return nil, err
		}

		return node, nil
	case isDigit(ch) || (ch == '.' && p.pos+1 < len(p.src) && isDigit(p.src[p.pos+1])):
		return p.parseNumber()
	case isIdentStart(ch):
		return p.parseIdentOrCall()
	default:
		return nil, p.syntaxError("number, identifier or '('")
	}
}

// parseNumber accepts 20, 0.5, 1. and .5
func (p *parser) parseNumber() (Node, error) {
	start := p.pos

	for !p.eof() && isDigit(p.peek()) {
		p.pos++
	}

	if p.peek() == '.' {
		p.pos++

		for !p.eof() && isDigit(p.peek()) {
			p.pos++
		}
	}

	value, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return nil, errors.NewSyntaxError(start, "number", fmt.Sprintf("'%s'", p.src[start:p.pos]))
	}

	return &NumberNode{Value: value}, nil
}

func (p *parser) parseIdentOrCall() (Node, error) {
	start := p.pos

	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}

	name := p.src[start:p.pos]

	p.skipWhitespace()

	if p.peek() != '(' {
		return &IdentifierNode{Name: name}, nil
	}

	p.pos++

	args := []Node{}

	p.skipWhitespace()

	if p.peek() != ')' {
		for {
			arg, err := p.nested()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			p.skipWhitespace()

			if p.peek() == ',' {
				p.pos++
				continue
			}

			break
		}
	}

	if err := p.expect(')'); err != nil {
		return nil, err
	}

	return &CallNode{Name: name, Args: args}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
