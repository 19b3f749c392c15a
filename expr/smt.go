package expr

import (
	"math"
	"strconv"
	"strings"
)

// SMT renders a constraint as an SMT-LIB 2 s-expression.
// The rendering targets the QF_NRA logic as accepted by dReal:
// exponentiation uses the ^ operator and conditionals use ite.
func SMT(c Constraint) string {
	var b strings.Builder
	c.smt(&b)

	return b.String()
}

func (v variable) smt(b *strings.Builder) { b.WriteString(string(v)) }

func (l literal) smt(b *strings.Builder) {
	v := float64(l)
	// SMT-LIB numerals are unsigned; negate explicitly.
	if v < 0 || math.Signbit(v) {
		b.WriteString("(- ")
		b.WriteString(smtFloat(-v))
		b.WriteByte(')')

		return
	}
	b.WriteString(smtFloat(v))
}

func (b binary) smt(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(b.op)
	sb.WriteByte(' ')
	b.l.smt(sb)
	sb.WriteByte(' ')
	b.r.smt(sb)
	sb.WriteByte(')')
}

func (u unary) smt(sb *strings.Builder) {
	switch u.op {
	case "neg":
		sb.WriteString("(- ")
		u.x.smt(sb)
		sb.WriteByte(')')
	default: // sqrt
		sb.WriteString("(^ ")
		u.x.smt(sb)
		sb.WriteString(" 0.5)")
	}
}

func (i ite) smt(sb *strings.Builder) {
	sb.WriteString("(ite ")
	i.cond.smt(sb)
	sb.WriteByte(' ')
	i.then.smt(sb)
	sb.WriteByte(' ')
	i.alt.smt(sb)
	sb.WriteByte(')')
}

func (c compare) smt(sb *strings.Builder) {
	sb.WriteByte('(')
	sb.WriteString(c.op)
	sb.WriteByte(' ')
	c.l.smt(sb)
	sb.WriteByte(' ')
	c.r.smt(sb)
	sb.WriteByte(')')
}

func (c conj) smt(sb *strings.Builder) {
	sb.WriteString("(and")
	for _, sub := range c.cs {
		sb.WriteByte(' ')
		sub.smt(sb)
	}
	sb.WriteByte(')')
}

// smtFloat renders a non-negative float as an SMT-LIB decimal.
// Plain positional notation: SMT-LIB decimals do not admit exponents.
// Integral values gain a trailing ".0" so they parse as Real, not Int.
func smtFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
