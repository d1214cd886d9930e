// Package expr provides the symbolic expression model that predicate
// queries are asked about. Expressions are immutable trees built from
// symbols, exact numeric literals, named constants, and the arithmetic
// connectives sum, product, and power. The package deliberately knows
// nothing about predicates or logic; it only answers structural
// questions (kind, arguments, containment, equality) and prints a
// canonical form used for atom identity.
package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the closed set of expression node types. Consumers
// dispatch on Kind instead of type-switching so that the full case list
// is visible at every dispatch site.
type Kind uint8

const (
	KindSymbol Kind = iota
	KindInteger
	KindRational
	KindConstant
	KindAdd
	KindMul
	KindPow
)

var kindNames = [...]string{
	KindSymbol:   "symbol",
	KindInteger:  "integer",
	KindRational: "rational",
	KindConstant: "constant",
	KindAdd:      "add",
	KindMul:      "mul",
	KindPow:      "pow",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Expr is an immutable expression tree node.
type Expr interface {
	// Kind reports which node type this is.
	Kind() Kind
	// Args returns the child expressions, nil for leaves.
	Args() []Expr
	// Has reports whether sub occurs anywhere in the tree, including
	// the root itself.
	Has(sub Expr) bool
	// Equal reports structural equality. Argument order matters for
	// sums and products.
	Equal(other Expr) bool
	// String renders the canonical text form.
	String() string
}

// Symbol is a free variable identified by name.
type Symbol struct {
	Name string
}

// NewSymbol returns the symbol with the given name.
func NewSymbol(name string) Symbol { return Symbol{Name: name} }

func (s Symbol) Kind() Kind            { return KindSymbol }
func (s Symbol) Args() []Expr          { return nil }
func (s Symbol) Has(sub Expr) bool     { return s.Equal(sub) }
func (s Symbol) Equal(other Expr) bool { return equal(s, other) }
func (s Symbol) String() string        { return s.Name }

// Integer is an exact integer literal.
type Integer struct {
	N int64
}

// NewInt returns the integer literal n.
func NewInt(n int64) Integer { return Integer{N: n} }

func (i Integer) Kind() Kind            { return KindInteger }
func (i Integer) Args() []Expr          { return nil }
func (i Integer) Has(sub Expr) bool     { return i.Equal(sub) }
func (i Integer) Equal(other Expr) bool { return equal(i, other) }
func (i Integer) String() string        { return strconv.FormatInt(i.N, 10) }

// Rational is an exact fraction in lowest terms with positive
// denominator. Construct through NewRat, which normalizes and
// collapses whole values to Integer.
type Rational struct {
	P, Q int64
}

// NewRat returns p/q reduced to lowest terms. Whole values collapse to
// an Integer. Panics if q is zero.
func NewRat(p, q int64) Expr {
	if q == 0 {
		panic("expr: rational with zero denominator")
	}
	if q < 0 {
		p, q = -p, -q
	}
	if g := gcd(abs(p), q); g > 1 {
		p, q = p/g, q/g
	}
	if q == 1 {
		return Integer{N: p}
	}
	return Rational{P: p, Q: q}
}

func (r Rational) Kind() Kind            { return KindRational }
func (r Rational) Args() []Expr          { return nil }
func (r Rational) Has(sub Expr) bool     { return r.Equal(sub) }
func (r Rational) Equal(other Expr) bool { return equal(r, other) }
func (r Rational) String() string {
	return strconv.FormatInt(r.P, 10) + "/" + strconv.FormatInt(r.Q, 10)
}

// Constant is a named transcendental constant such as pi.
type Constant struct {
	Name string
}

// Well-known constants. The resolvers treat both as positive irrational
// reals.
var (
	Pi = Constant{Name: "pi"}
	E  = Constant{Name: "e"}
)

func (c Constant) Kind() Kind            { return KindConstant }
func (c Constant) Args() []Expr          { return nil }
func (c Constant) Has(sub Expr) bool     { return c.Equal(sub) }
func (c Constant) Equal(other Expr) bool { return equal(c, other) }
func (c Constant) String() string        { return c.Name }

// Add is an n-ary sum. Construct through NewAdd, which flattens nested
// sums.
type Add struct {
	Terms []Expr
}

// NewAdd returns the sum of terms, flattening any nested sums into a
// single level. Panics if fewer than two terms remain after
// flattening.
func NewAdd(terms ...Expr) Add {
	flat := flatten(KindAdd, terms)
	if len(flat) < 2 {
		panic("expr: sum needs at least two terms")
	}
	return Add{Terms: flat}
}

func (a Add) Kind() Kind            { return KindAdd }
func (a Add) Args() []Expr          { return a.Terms }
func (a Add) Has(sub Expr) bool     { return has(a, sub) }
func (a Add) Equal(other Expr) bool { return equal(a, other) }
func (a Add) String() string        { return render(a, 0) }

// Mul is an n-ary product. Construct through NewMul, which flattens
// nested products.
type Mul struct {
	Factors []Expr
}

// NewMul returns the product of factors, flattening any nested
// products into a single level. Panics if fewer than two factors
// remain after flattening.
func NewMul(factors ...Expr) Mul {
	flat := flatten(KindMul, factors)
	if len(flat) < 2 {
		panic("expr: product needs at least two factors")
	}
	return Mul{Factors: flat}
}

func (m Mul) Kind() Kind            { return KindMul }
func (m Mul) Args() []Expr          { return m.Factors }
func (m Mul) Has(sub Expr) bool     { return has(m, sub) }
func (m Mul) Equal(other Expr) bool { return equal(m, other) }
func (m Mul) String() string        { return render(m, 0) }

// Pow is base raised to exp.
type Pow struct {
	Base, Exp Expr
}

// NewPow returns base raised to exp.
func NewPow(base, exp Expr) Pow { return Pow{Base: base, Exp: exp} }

func (p Pow) Kind() Kind            { return KindPow }
func (p Pow) Args() []Expr          { return []Expr{p.Base, p.Exp} }
func (p Pow) Has(sub Expr) bool     { return has(p, sub) }
func (p Pow) Equal(other Expr) bool { return equal(p, other) }
func (p Pow) String() string        { return render(p, 0) }

func flatten(k Kind, args []Expr) []Expr {
	out := make([]Expr, 0, len(args))
	for _, a := range args {
		if a.Kind() == k {
			out = append(out, a.Args()...)
		} else {
			out = append(out, a)
		}
	}
	return out
}

func has(e Expr, sub Expr) bool {
	if e.Equal(sub) {
		return true
	}
	for _, a := range e.Args() {
		if a.Has(sub) {
			return true
		}
	}
	return false
}

func equal(a, b Expr) bool {
	if b == nil || a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindSymbol:
		return a.(Symbol).Name == b.(Symbol).Name
	case KindInteger:
		return a.(Integer).N == b.(Integer).N
	case KindRational:
		ra, rb := a.(Rational), b.(Rational)
		return ra.P == rb.P && ra.Q == rb.Q
	case KindConstant:
		return a.(Constant).Name == b.(Constant).Name
	}
	aa, ba := a.Args(), b.Args()
	if len(aa) != len(ba) {
		return false
	}
	for i := range aa {
		if !aa[i].Equal(ba[i]) {
			return false
		}
	}
	return true
}

// Operator precedence levels for rendering. Higher binds tighter.
const (
	precAdd = 1
	precMul = 2
	precPow = 3
)

func render(e Expr, outer int) string {
	var sb strings.Builder
	var inner int
	switch e.Kind() {
	case KindAdd:
		inner = precAdd
		for i, t := range e.Args() {
			if i > 0 {
				sb.WriteString(" + ")
			}
			sb.WriteString(render(t, inner))
		}
	case KindMul:
		inner = precMul
		for i, f := range e.Args() {
			if i > 0 {
				sb.WriteString("*")
			}
			sb.WriteString(render(f, inner))
		}
	case KindPow:
		inner = precPow
		p := e.(Pow)
		// Exponent rendered at a looser level so nested powers
		// parenthesize: x^(y^z) stays unambiguous.
		sb.WriteString(render(p.Base, inner))
		sb.WriteString("^")
		sb.WriteString(render(p.Exp, inner))
	default:
		return e.String()
	}
	if outer >= inner {
		return "(" + sb.String() + ")"
	}
	return sb.String()
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
