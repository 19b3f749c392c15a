package expr

import "strings"

// Constraint is a boolean predicate over real terms.
// Constraints are immutable and side-effect free.
type Constraint interface {
	// String renders the predicate in infix form for debugging.
	String() string

	// smt appends the SMT-LIB 2 rendering of the predicate to b.
	smt(b *strings.Builder)

	// collect adds every unknown name occurring in the predicate to set.
	collect(set map[string]struct{})
}

// compare relates two terms with a comparison operator.
type compare struct {
	op   string // one of "=", "<", "<=", ">", ">="
	l, r Expr
}

// conj is the conjunction of one or more constraints.
type conj struct {
	cs []Constraint
}

// Eq returns l == r.
func Eq(l, r Expr) Constraint { return compare{op: "=", l: l, r: r} }

// Lt returns l < r.
func Lt(l, r Expr) Constraint { return compare{op: "<", l: l, r: r} }

// Le returns l <= r.
func Le(l, r Expr) Constraint { return compare{op: "<=", l: l, r: r} }

// Gt returns l > r.
func Gt(l, r Expr) Constraint { return compare{op: ">", l: l, r: r} }

// Ge returns l >= r.
func Ge(l, r Expr) Constraint { return compare{op: ">=", l: l, r: r} }

// And returns the conjunction of cs. And() with no arguments is not
// meaningful and callers must pass at least one constraint.
func And(cs ...Constraint) Constraint {
	if len(cs) == 1 {
		return cs[0]
	}

	return conj{cs: cs}
}

func (c compare) String() string {
	op := c.op
	if op == "=" {
		op = "=="
	}

	return "(" + c.l.String() + " " + op + " " + c.r.String() + ")"
}

func (c compare) collect(set map[string]struct{}) {
	c.l.collect(set)
	c.r.collect(set)
}

func (c conj) String() string {
	parts := make([]string, len(c.cs))
	for i, sub := range c.cs {
		parts[i] = sub.String()
	}

	return "(" + strings.Join(parts, " && ") + ")"
}

func (c conj) collect(set map[string]struct{}) {
	for _, sub := range c.cs {
		sub.collect(set)
	}
}
