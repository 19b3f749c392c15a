package expr

import (
	"errors"
	"fmt"
)

// ErrNonLiteralExponent is returned by Deriv for a Pow whose exponent is not
// a literal; the general a^b rule needs exp/ln terms the solver dialect is
// not guaranteed to accept.
var ErrNonLiteralExponent = errors.New("expr: cannot differentiate non-literal exponent")

// Deriv returns the partial derivative of e with respect to the unknown
// name, built with the same constructors as e (no simplification beyond
// dropping obvious zero branches). Ite derivatives differentiate both
// branches under the unchanged condition.
func Deriv(e Expr, name string) (Expr, error) {
	switch n := e.(type) {
	case variable:
		if string(n) == name {
			return Lit(1), nil
		}

		return Lit(0), nil

	case literal:
		return Lit(0), nil

	case binary:
		return derivBinary(n, name)

	case unary:
		dx, err := Deriv(n.x, name)
		if err != nil {
			return nil, err
		}
		if n.op == "neg" {
			return Neg(dx), nil
		}
		// d/dt sqrt(u) = u' / (2*sqrt(u))
		return Div(dx, Mul(Lit(2), Sqrt(n.x))), nil

	case ite:
		dt, err := Deriv(n.then, name)
		if err != nil {
			return nil, err
		}
		da, err := Deriv(n.alt, name)
		if err != nil {
			return nil, err
		}

		return Ite(n.cond, dt, da), nil

	default:
		return nil, fmt.Errorf("expr: cannot differentiate %T", e)
	}
}

func derivBinary(b binary, name string) (Expr, error) {
	dl, err := Deriv(b.l, name)
	if err != nil {
		return nil, err
	}

	switch b.op {
	case "+":
		dr, err := Deriv(b.r, name)
		if err != nil {
			return nil, err
		}

		return Add(dl, dr), nil

	case "-":
		dr, err := Deriv(b.r, name)
		if err != nil {
			return nil, err
		}

		return Sub(dl, dr), nil

	case "*":
		dr, err := Deriv(b.r, name)
		if err != nil {
			return nil, err
		}
		// product rule
		return Add(Mul(dl, b.r), Mul(b.l, dr)), nil

	case "/":
		dr, err := Deriv(b.r, name)
		if err != nil {
			return nil, err
		}
		// quotient rule
		return Div(
			Sub(Mul(dl, b.r), Mul(b.l, dr)),
			Mul(b.r, b.r),
		), nil

	default: // "^"
		k, ok := b.r.(literal)
		if !ok {
			return nil, ErrNonLiteralExponent
		}
		// power rule with chain: d u^k = k*u^(k-1)*u'
		return Mul(
			Mul(Lit(float64(k)), Pow(b.l, Lit(float64(k)-1))),
			dl,
		), nil
	}
}
