// Package parser reads the textual proposition and expression forms
// used by the command line and the interactive console. The grammar is
// the print syntax of the logic and expr packages: predicate
// applications like "even(x*y)" combined with ~, &, |, -> and <->.
//
// Predicate names are resolved through a registry, so a proposition
// can only mention vocabulary the process actually knows about.
// Arithmetic inside an application keeps no operator precedence: a
// term mixes one connective per parenthesis level, which matches the
// canonical print form and keeps accidental precedence bugs out of
// hand-typed queries.
package parser

import (
	"fmt"
	"strconv"

	"presage/internal/assume"
	"presage/internal/expr"
	"presage/internal/logic"
)

// Error is a failed parse, carrying the byte offset the parser had
// reached. Registry lookup failures are wrapped so errors.Is sees
// assume.ErrNotFound through it.
type Error struct {
	Pos int
	Msg string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse at %d: %s: %v", e.Pos, e.Msg, e.Err)
	}
	return fmt.Sprintf("parse at %d: %s", e.Pos, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// ParseProp reads a proposition, resolving every predicate name
// through reg.
func ParseProp(src string, reg *assume.Registry) (logic.Prop, error) {
	p := &parser{src: src, reg: reg}
	p.next()
	prop, err := p.prop()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q after proposition", p.tok.text)
	}
	return prop, nil
}

// ParseExpr reads a bare expression in the application-argument
// syntax.
func ParseExpr(src string) (expr.Expr, error) {
	p := &parser{src: src}
	p.next()
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.errorf("unexpected %q after expression", p.tok.text)
	}
	return e, nil
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokName
	tokInt
	tokNot    // ~
	tokAnd    // &
	tokOr     // |
	tokCond   // ->
	tokIff    // <->
	tokLParen // (
	tokRParen // )
	tokPlus   // +
	tokStar   // *
	tokCaret  // ^
	tokSlash  // /
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type parser struct {
	src string
	reg *assume.Registry
	off int
	tok token
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{Pos: p.tok.pos, Msg: fmt.Sprintf(format, args...)}
}

// next scans the following token into p.tok.
func (p *parser) next() {
	for p.off < len(p.src) && (p.src[p.off] == ' ' || p.src[p.off] == '\t') {
		p.off++
	}
	start := p.off
	if p.off >= len(p.src) {
		p.tok = token{kind: tokEOF, pos: start}
		return
	}
	c := p.src[p.off]
	single := map[byte]tokenKind{
		'~': tokNot, '&': tokAnd, '|': tokOr, '(': tokLParen, ')': tokRParen,
		'+': tokPlus, '*': tokStar, '^': tokCaret, '/': tokSlash,
	}
	switch {
	case c == '-':
		if p.off+1 < len(p.src) && p.src[p.off+1] == '>' {
			p.off += 2
			p.tok = token{kind: tokCond, text: "->", pos: start}
			return
		}
	case c == '<':
		if p.off+2 < len(p.src) && p.src[p.off+1] == '-' && p.src[p.off+2] == '>' {
			p.off += 3
			p.tok = token{kind: tokIff, text: "<->", pos: start}
			return
		}
	case isDigit(c):
		for p.off < len(p.src) && isDigit(p.src[p.off]) {
			p.off++
		}
		p.tok = token{kind: tokInt, text: p.src[start:p.off], pos: start}
		return
	case isNameByte(c):
		for p.off < len(p.src) && (isNameByte(p.src[p.off]) || isDigit(p.src[p.off])) {
			p.off++
		}
		p.tok = token{kind: tokName, text: p.src[start:p.off], pos: start}
		return
	default:
		if kind, ok := single[c]; ok {
			p.off++
			p.tok = token{kind: kind, text: string(c), pos: start}
			return
		}
	}
	// Stray byte, or a '-'/'<' that does not start an arrow. The
	// parser reports it as an unexpected token.
	p.off++
	p.tok = token{kind: tokInvalid, text: string(c), pos: start}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// prop := equiv
func (p *parser) prop() (logic.Prop, error) { return p.equiv() }

// equiv := implies ( '<->' implies )*
func (p *parser) equiv() (logic.Prop, error) {
	left, err := p.implies()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokIff {
		p.next()
		right, err := p.implies()
		if err != nil {
			return nil, err
		}
		left = logic.Equiv(left, right)
	}
	return left, nil
}

// implies := or ( '->' implies )?   right associative
func (p *parser) implies() (logic.Prop, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokCond {
		return left, nil
	}
	p.next()
	right, err := p.implies()
	if err != nil {
		return nil, err
	}
	return logic.Implies(left, right), nil
}

// or := and ( '|' and )*
func (p *parser) or() (logic.Prop, error) {
	first, err := p.and()
	if err != nil {
		return nil, err
	}
	ops := []logic.Prop{first}
	for p.tok.kind == tokOr {
		p.next()
		op, err := p.and()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if len(ops) == 1 {
		return first, nil
	}
	return logic.Or(ops...), nil
}

// and := unary ( '&' unary )*
func (p *parser) and() (logic.Prop, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	ops := []logic.Prop{first}
	for p.tok.kind == tokAnd {
		p.next()
		op, err := p.unary()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if len(ops) == 1 {
		return first, nil
	}
	return logic.And(ops...), nil
}

// unary := '~' unary | 'true' | 'false' | atom | '(' prop ')'
func (p *parser) unary() (logic.Prop, error) {
	switch p.tok.kind {
	case tokNot:
		p.next()
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return logic.Not(inner), nil
	case tokLParen:
		p.next()
		inner, err := p.prop()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected ')'")
		}
		p.next()
		return inner, nil
	case tokName:
		switch p.tok.text {
		case "true":
			p.next()
			return logic.Top, nil
		case "false":
			p.next()
			return logic.Bottom, nil
		}
		return p.atom()
	}
	return nil, p.errorf("expected a proposition, got %q", p.tok.text)
}

// atom := NAME | NAME '(' expr ')'
func (p *parser) atom() (logic.Prop, error) {
	name, pos := p.tok.text, p.tok.pos
	pred, err := p.reg.Lookup(name)
	if err != nil {
		return nil, &Error{Pos: pos, Msg: fmt.Sprintf("predicate %q", name), Err: err}
	}
	p.next()
	if p.tok.kind != tokLParen {
		return logic.AtomOf(pred), nil
	}
	p.next()
	arg, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokRParen {
		return nil, p.errorf("expected ')' closing %s(...)", name)
	}
	p.next()
	return pred.Of(arg), nil
}

// expr := term ( ('+'|'*') term )* | term '^' term
//
// One connective per level; mixing requires parentheses.
func (p *parser) expr() (expr.Expr, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	switch p.tok.kind {
	case tokPlus, tokStar:
		op := p.tok.kind
		args := []expr.Expr{first}
		for p.tok.kind == op {
			p.next()
			t, err := p.term()
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		if p.tok.kind == tokPlus || p.tok.kind == tokStar || p.tok.kind == tokCaret {
			return nil, p.errorf("mixed arithmetic operators; parenthesize")
		}
		if op == tokPlus {
			return expr.NewAdd(args...), nil
		}
		return expr.NewMul(args...), nil
	case tokCaret:
		p.next()
		exp, err := p.term()
		if err != nil {
			return nil, err
		}
		if p.tok.kind == tokPlus || p.tok.kind == tokStar || p.tok.kind == tokCaret {
			return nil, p.errorf("mixed arithmetic operators; parenthesize")
		}
		return expr.NewPow(first, exp), nil
	}
	return first, nil
}

// term := INT | INT '/' INT | 'pi' | 'e' | NAME | '(' expr ')'
func (p *parser) term() (expr.Expr, error) {
	switch p.tok.kind {
	case tokInt:
		n, err := strconv.ParseInt(p.tok.text, 10, 64)
		if err != nil {
			return nil, p.errorf("integer %q out of range", p.tok.text)
		}
		p.next()
		if p.tok.kind != tokSlash {
			return expr.NewInt(n), nil
		}
		p.next()
		if p.tok.kind != tokInt {
			return nil, p.errorf("expected denominator after '/'")
		}
		d, err := strconv.ParseInt(p.tok.text, 10, 64)
		if err != nil || d == 0 {
			return nil, p.errorf("bad denominator %q", p.tok.text)
		}
		p.next()
		return expr.NewRat(n, d), nil
	case tokName:
		name := p.tok.text
		p.next()
		switch name {
		case "pi":
			return expr.Pi, nil
		case "e":
			return expr.E, nil
		}
		return expr.NewSymbol(name), nil
	case tokLParen:
		p.next()
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected ')'")
		}
		p.next()
		return inner, nil
	}
	return nil, p.errorf("expected an expression, got %q", p.tok.text)
}
