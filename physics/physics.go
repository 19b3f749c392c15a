// Package physics builds symbolic fluid-dynamics constraints for microfluidic
// channel networks: laminar channel resistance, pressure-flow balance,
// planar geometry (length, collinearity, crossing angle), droplet generation
// at T-junctions, and electrophoretic transport.
//
// Every function is pure: it takes symbolic term references plus literal
// parameters and returns expressions or constraints without touching any
// graph state. Callers decide which results to assert.
//
// Units are SI throughout: Pa, m, m^3/s, Pa*s, kg/m^3, V, m^2/(V*s).
package physics

import (
	"math"

	"github.com/droplab/mfsat/expr"
)

// qGutter is the fixed gutter-flow fraction in the T-junction droplet model
// (DOI:10.1039/c002625e).
const qGutter = 0.1

// muEOF is the rule-of-thumb electroosmotic mobility term added to the
// electrophoretic mobility of every analyte.
const muEOF = 1.0e8

// Coefficients of the quartic rational erf approximation.
const (
	erfA1 = 0.278393
	erfA2 = 0.230389
	erfA3 = 0.000972
	erfA4 = 0.078108
)

// ChannelResistance returns the laminar resistance of a rectangular channel:
//
//	R = 12*mu*L / (w * h^3 * (1 - 0.63*h/w))
//
// The closed form is only valid for h < w, so the first return value is the
// precondition constraint that must always be asserted alongside the formula.
func ChannelResistance(w, h, mu, l expr.Expr) (expr.Constraint, expr.Expr) {
	precond := expr.Lt(h, w)
	r := expr.Div(
		expr.Mul(expr.Lit(12), expr.Mul(mu, l)),
		expr.Mul(w, expr.Mul(
			expr.Pow(h, expr.Lit(3)),
			expr.Sub(expr.Lit(1), expr.Mul(expr.Lit(0.63), expr.Div(h, w))),
		)),
	)

	return precond, r
}

// PressureFlow asserts the Hagen-Poiseuille balance across a channel:
// p1 - p2 == Q*R.
func PressureFlow(p1, p2, q, r expr.Expr) expr.Constraint {
	return expr.Eq(expr.Sub(p1, p2), expr.Mul(q, r))
}

// OutputPressure is the pressure remaining at the end of a channel,
// Pin - R*Q. It is a value, not a constraint: callers equate it with the
// downstream node pressure.
func OutputPressure(pIn, r, q expr.Expr) expr.Expr {
	return expr.Sub(pIn, expr.Mul(r, q))
}

// PythagoreanLength asserts that the channel length is the planar distance
// between its endpoints: (xa-xb)^2 + (ya-yb)^2 == L^2.
func PythagoreanLength(xa, ya, xb, yb, l expr.Expr) expr.Constraint {
	dx := expr.Sub(xa, xb)
	dy := expr.Sub(ya, yb)

	return expr.Eq(
		expr.Add(expr.Pow(dx, expr.Lit(2)), expr.Pow(dy, expr.Lit(2))),
		expr.Pow(l, expr.Lit(2)),
	)
}

// StraightLine asserts that three points are collinear by forcing the area
// of the triangle they span to zero:
//
//	(x1*(y3-y2) + x3*(y2-y1) + x2*(y1-y3)) / 2 == 0
func StraightLine(x1, y1, x2, y2, x3, y3 expr.Expr) expr.Constraint {
	area2 := expr.Add(
		expr.Mul(x1, expr.Sub(y3, y2)),
		expr.Add(
			expr.Mul(x3, expr.Sub(y2, y1)),
			expr.Mul(x2, expr.Sub(y1, y3)),
		),
	)

	return expr.Eq(expr.Div(area2, expr.Lit(2)), expr.Lit(0))
}

// CosSquaredAngle returns cos^2 of the angle at point 2 between the legs
// to points 1 and 3, via the cosine law: (a.b)^2 / (|a|^2 |b|^2) with
// a = p1-p2 and b = p3-p2. Callers compare the result against
// cos^2(criticalAngle).
func CosSquaredAngle(x1, y1, x2, y2, x3, y3 expr.Expr) expr.Expr {
	ax := expr.Sub(x1, x2)
	ay := expr.Sub(y1, y2)
	bx := expr.Sub(x3, x2)
	by := expr.Sub(y3, y2)

	dot := expr.Add(expr.Mul(ax, bx), expr.Mul(ay, by))
	a2 := expr.Add(expr.Mul(ax, ax), expr.Mul(ay, ay))
	b2 := expr.Add(expr.Mul(bx, bx), expr.Mul(by, by))

	return expr.Div(expr.Pow(dot, expr.Lit(2)), expr.Mul(a2, b2))
}

// DropletVolume is the closed-form volume of a droplet generated at a
// T-junction under the pinch/fill model (DOI:10.1039/c002625e).
//
//	h, w  height and width of the continuous/output channel
//	wIn   width of the dispersed channel
//	eps   corner sharpness parameter
//	qD,qC dispersed and continuous flow rates
func DropletVolume(h, w, wIn, eps, qD, qC expr.Expr) expr.Expr {
	// normalized fill volume: 3pi/8 - (pi/2)(1 - pi/4)(h/w)
	vFill := expr.Sub(
		expr.Lit(3*math.Pi/8),
		expr.Mul(expr.Lit((math.Pi/2)*(1-math.Pi/4)), expr.Div(h, w)),
	)

	// parallel combination of h and w
	hw := expr.Div(expr.Mul(h, w), expr.Add(h, w))

	// rPinch = w + (wIn - (hw - eps) + sqrt(2*(wIn-hw)*(w-hw)))
	rPinch := expr.Add(w, expr.Add(
		expr.Sub(wIn, expr.Sub(hw, eps)),
		expr.Sqrt(expr.Mul(expr.Lit(2),
			expr.Mul(expr.Sub(wIn, hw), expr.Sub(w, hw)))),
	))
	rFill := w

	pinchRatio := expr.Div(rPinch, w)
	fillRatio := expr.Div(rFill, w)

	alpha := expr.Mul(
		expr.Lit((1-math.Pi/4)/(1-qGutter)),
		expr.Add(
			expr.Sub(expr.Pow(pinchRatio, expr.Lit(2)), expr.Pow(fillRatio, expr.Lit(2))),
			expr.Mul(
				expr.Sub(expr.Mul(expr.Lit(math.Pi/4), pinchRatio), fillRatio),
				expr.Div(h, w),
			),
		),
	)

	return expr.Mul(
		expr.Mul(h, expr.Mul(w, w)),
		expr.Add(vFill, expr.Mul(alpha, expr.Div(qD, qC))),
	)
}

// PortFlowRate asserts the inflow rate of a pressure-driven port from the
// combined cross-sectional area of its outgoing channels
// (Hagen-Poiseuille derived): Q^2 == A^2 * (2*p/rho).
// The squared form avoids an explicit square root on the pressure term.
func PortFlowRate(q expr.Expr, areas []expr.Expr, pressure, density expr.Expr) expr.Constraint {
	total := areas[0]
	for _, a := range areas[1:] {
		total = expr.Add(total, a)
	}

	return expr.Eq(
		expr.Pow(q, expr.Lit(2)),
		expr.Mul(
			expr.Pow(total, expr.Lit(2)),
			expr.Div(expr.Mul(expr.Lit(2), pressure), density),
		),
	)
}

// ElectricField is the constant-field strength between two electrodes:
// (Va - Vc) / pathLength.
func ElectricField(vAnode, vCathode, pathLength expr.Expr) expr.Expr {
	return expr.Div(expr.Sub(vAnode, vCathode), pathLength)
}

// Mobility is the total mobility of a spherical charged analyte: the
// electrophoretic term q/(4*pi*eta*r) plus the electroosmotic rule-of-thumb
// contribution. eta is the bulk-fluid viscosity.
func Mobility(eta, q, r expr.Expr) expr.Expr {
	ep := expr.Div(q, expr.Mul(expr.Lit(4*math.Pi), expr.Mul(eta, r)))

	return expr.Add(ep, expr.Lit(muEOF))
}

// ParticleVelocity is the drift velocity of an analyte under field e: mu*e.
func ParticleVelocity(mu, e expr.Expr) expr.Expr {
	return expr.Mul(mu, e)
}

// ErfApprox is a quartic rational approximation of the error function,
// 1 - (1 + a1*x + a2*x^2 + a3*x^3 + a4*x^4)^-4, accurate enough for the
// band-diffusion model and representable in the solver's term language.
func ErfApprox(x expr.Expr) expr.Expr {
	poly := expr.Add(expr.Lit(1),
		expr.Add(expr.Mul(expr.Lit(erfA1), x),
			expr.Add(expr.Mul(expr.Lit(erfA2), expr.Pow(x, expr.Lit(2))),
				expr.Add(expr.Mul(expr.Lit(erfA3), expr.Pow(x, expr.Lit(3))),
					expr.Mul(expr.Lit(erfA4), expr.Pow(x, expr.Lit(4)))))))

	return expr.Sub(expr.Lit(1), expr.Pow(poly, expr.Lit(-4)))
}

// Concentration is the band-diffusion concentration of a sample at distance
// x and time t after injection, for a rectangular channel with the sample
// initially confined to width w:
//
//	C0/2 * (erf((w - x + v*t)/(2*sqrt(D*t))) + erf((w + x - v*t)/(2*sqrt(D*t))))
func Concentration(c0, d, w, v, x, t expr.Expr) expr.Expr {
	spread := expr.Mul(expr.Lit(2), expr.Sqrt(expr.Mul(d, t)))
	drift := expr.Mul(v, t)

	lead := ErfApprox(expr.Div(expr.Add(expr.Sub(w, x), drift), spread))
	trail := ErfApprox(expr.Div(expr.Sub(expr.Add(w, x), drift), spread))

	return expr.Mul(expr.Div(c0, expr.Lit(2)), expr.Add(lead, trail))
}
