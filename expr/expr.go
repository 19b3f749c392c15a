// Package expr provides a minimal symbolic representation of nonlinear
// real-arithmetic terms and constraints.
//
// Terms are built lazily from named unknowns and literals with the usual
// arithmetic constructors (Add, Sub, Mul, Div, Pow, Neg, Sqrt) and are never
// evaluated locally: the whole formula is handed to an external NRA solver.
// Comparisons (Eq, Lt, Le, Gt, Ge) produce Constraint values, and And
// conjoins constraints; Ite selects between two terms on a constraint.
//
// Key features:
//   - Var(name) / Lit(v): leaf terms
//   - compositional constructors, no simplification, no evaluation
//   - String(): deterministic infix rendering for debug output
//   - WriteSMT / SMT: SMT-LIB 2 prefix rendering (see smt.go)
//   - Vars(...): deterministic sorted set of unknown names in a formula
//
// Determinism:
//   - Rendering and variable collection are deterministic for a fixed term,
//     which keeps solver input reproducible run to run.
package expr

import (
	"sort"
	"strconv"
	"strings"
)

// Expr is a symbolic real-valued term.
// Implementations are immutable; sharing subterms is safe.
type Expr interface {
	// String renders the term in infix form for debugging.
	String() string

	// smt appends the SMT-LIB 2 rendering of the term to b.
	smt(b *strings.Builder)

	// collect adds every unknown name occurring in the term to set.
	collect(set map[string]struct{})
}

// variable is a named real unknown.
type variable string

// literal is a real constant.
type literal float64

// binary is an arithmetic composition of two terms.
type binary struct {
	op   string // one of "+", "-", "*", "/", "^"
	l, r Expr
}

// unary is a single-operand composition.
type unary struct {
	op string // "neg" or "sqrt"
	x  Expr
}

// ite selects between two terms depending on a constraint.
type ite struct {
	cond      Constraint
	then, alt Expr
}

// Var returns a term referring to the real unknown with the given name.
func Var(name string) Expr { return variable(name) }

// Lit returns a constant term.
func Lit(v float64) Expr { return literal(v) }

// Add returns l + r.
func Add(l, r Expr) Expr { return binary{op: "+", l: l, r: r} }

// Sub returns l - r.
func Sub(l, r Expr) Expr { return binary{op: "-", l: l, r: r} }

// Mul returns l * r.
func Mul(l, r Expr) Expr { return binary{op: "*", l: l, r: r} }

// Div returns l / r.
func Div(l, r Expr) Expr { return binary{op: "/", l: l, r: r} }

// Pow returns l raised to the power r.
func Pow(l, r Expr) Expr { return binary{op: "^", l: l, r: r} }

// Neg returns -x.
func Neg(x Expr) Expr { return unary{op: "neg", x: x} }

// Sqrt returns the square root of x.
func Sqrt(x Expr) Expr { return unary{op: "sqrt", x: x} }

// Ite returns the term equal to then when cond holds and to alt otherwise.
func Ite(cond Constraint, then, alt Expr) Expr {
	return ite{cond: cond, then: then, alt: alt}
}

// Sum folds terms left-to-right with Add. Sum() is Lit(0).
func Sum(terms ...Expr) Expr {
	if len(terms) == 0 {
		return Lit(0)
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = Add(acc, t)
	}

	return acc
}

func (v variable) String() string                  { return string(v) }
func (v variable) collect(set map[string]struct{}) { set[string(v)] = struct{}{} }

func (l literal) String() string              { return formatFloat(float64(l)) }
func (l literal) collect(map[string]struct{}) {}

func (b binary) String() string {
	return "(" + b.l.String() + " " + b.op + " " + b.r.String() + ")"
}

func (b binary) collect(set map[string]struct{}) {
	b.l.collect(set)
	b.r.collect(set)
}

func (u unary) String() string {
	if u.op == "neg" {
		return "(-" + u.x.String() + ")"
	}

	return "sqrt(" + u.x.String() + ")"
}

func (u unary) collect(set map[string]struct{}) { u.x.collect(set) }

func (i ite) String() string {
	return "ite(" + i.cond.String() + ", " + i.then.String() + ", " + i.alt.String() + ")"
}

func (i ite) collect(set map[string]struct{}) {
	i.cond.collect(set)
	i.then.collect(set)
	i.alt.collect(set)
}

// Vars returns the sorted set of unknown names occurring in the constraints.
func Vars(cs ...Constraint) []string {
	set := make(map[string]struct{})
	for _, c := range cs {
		c.collect(set)
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// formatFloat renders a literal with full round-trip precision.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
