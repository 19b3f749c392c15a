package solver

import (
	"strconv"
	"strings"

	"github.com/droplab/mfsat/expr"
)

// Script renders a constraint conjunction as an SMT-LIB 2 problem in the
// QF_NRA logic, one declaration per design variable and one assertion per
// constraint.
func Script(cs []expr.Constraint, precision float64) string {
	var b strings.Builder

	b.WriteString("(set-logic QF_NRA)\n")
	if precision > 0 {
		b.WriteString("(set-option :precision ")
		b.WriteString(strconv.FormatFloat(precision, 'f', -1, 64))
		b.WriteString(")\n")
	}
	for _, name := range expr.Vars(cs...) {
		b.WriteString("(declare-fun ")
		b.WriteString(name)
		b.WriteString(" () Real)\n")
	}
	for _, c := range cs {
		b.WriteString("(assert ")
		b.WriteString(expr.SMT(c))
		b.WriteString(")\n")
	}
	b.WriteString("(check-sat)\n(exit)\n")

	return b.String()
}
