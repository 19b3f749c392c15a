package translate

import (
	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/physics"
	"github.com/droplab/mfsat/schematic"
)

// translateChannel emits the geometric and hydraulic constraints of a
// rectangular channel and recurses into its downstream node.
func (t *Translator) translateChannel(ch *schematic.Channel) error {
	from, _ := t.sch.Node(ch.From)
	to, _ := t.sch.Node(ch.To)

	// 1. Length must match the Euclidean distance between the endpoints.
	t.emit(physics.PythagoreanLength(from.X, from.Y, to.X, to.Y, ch.Length))

	// 2. Dimensions: pinned values collapse to equalities, free ones get
	//    fabrication bounds.
	t.emitPin(ch.Length, ch.MinLength, minDimension, maxLength, false)
	t.emitPin(ch.Width, ch.MinWidth, minDimension, maxBreadth, false)
	t.emitPin(ch.Height, ch.MinHeight, minDimension, maxBreadth, false)

	// 3. Viscosity is constant along a channel, so both the channel and
	//    its downstream node inherit the upstream value. This must precede
	//    the resistance equation, which reads the channel viscosity.
	t.emit(
		expr.Eq(ch.Viscosity, from.Viscosity),
		expr.Eq(to.Viscosity, from.Viscosity),
	)

	// 4. Hydraulic resistance of a wide rectangular duct. The precondition
	//    h < w keeps the formula's series truncation valid.
	precond, resistance := physics.ChannelResistance(ch.Width, ch.Height, ch.Viscosity, ch.Length)
	t.emit(
		precond,
		expr.Eq(ch.Resistance, resistance),
		expr.Gt(ch.Resistance, expr.Lit(0)),
		expr.Lt(ch.Resistance, expr.Lit(maxResistance)),
	)

	// 5. Flow is conserved along the channel.
	t.emit(expr.Eq(ch.FlowRate, from.FlowRate))

	// 6. Continue the walk at the downstream node.
	return t.visitNode(ch.To)
}
