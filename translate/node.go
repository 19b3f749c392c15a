package translate

import (
	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/physics"
	"github.com/droplab/mfsat/schematic"
)

// translateNode emits the parameter bounds shared by every node kind and
// recurses into the successor channels.
func (t *Translator) translateNode(n *schematic.Node) error {
	// 1. Pressure at a node follows from each upstream channel's drop.
	//    With several predecessors the node pressure must agree with every
	//    incoming branch, so one equality is emitted per predecessor.
	for _, from := range t.sch.Predecessors(n.Name) {
		ch, _ := t.sch.Channel(from, n.Name)
		pred, _ := t.sch.Node(from)
		t.emit(expr.Eq(n.Pressure, physics.OutputPressure(pred.Pressure, ch.Resistance, ch.FlowRate)))
	}

	// 2. Position: pinned coordinates collapse to equalities, free ones
	//    stay non-negative (the chip box bounds them from above).
	t.emitPin(n.X, n.MinX, 0, 0, true)
	t.emitPin(n.Y, n.MinY, 0, 0, true)

	// 3. Physical parameters: user pins win, otherwise guard bounds keep
	//    the solver inside physically plausible ranges.
	t.emitPin(n.Pressure, n.MinPressure, minPressure, maxPressure, false)
	t.emitPin(n.FlowRate, n.MinFlowRate, minFlowRate, maxFlowRate, false)
	t.emitPin(n.Viscosity, n.MinViscosity, minViscosity, maxViscosity, false)
	t.emitPin(n.Density, n.MinDensity, minDensity, maxDensity, false)

	// 4. A single upstream branch carries its density through unchanged.
	//    Mixing of unequal densities is not modeled.
	if preds := t.sch.Predecessors(n.Name); len(preds) == 1 {
		pred, _ := t.sch.Node(preds[0])
		t.emit(expr.Eq(n.Density, pred.Density))
	}

	// 5. Continue the walk through every outgoing channel.
	for _, to := range t.sch.Successors(n.Name) {
		if err := t.visitChannel(n.Name, to); err != nil {
			return err
		}
	}

	return nil
}

// emitPin equates v with its pin when set; otherwise it emits the open
// interval (lo, hi), or just v >= lo when onlyLower is true.
func (t *Translator) emitPin(v expr.Expr, pin schematic.Pin, lo, hi float64, onlyLower bool) {
	if pin.Set() {
		t.emit(expr.Eq(v, expr.Lit(pin.Value())))
		return
	}
	if onlyLower {
		t.emit(expr.Ge(v, expr.Lit(lo)))
		return
	}
	t.emit(expr.Gt(v, expr.Lit(lo)), expr.Lt(v, expr.Lit(hi)))
}

// translateInput handles an input port. It is a node with no upstream
// channels whose flow rate, unless pinned, follows from its pressure and
// the total cross-section of the outgoing channels.
func (t *Translator) translateInput(n *schematic.Node) error {
	succs := t.sch.Successors(n.Name)
	if len(succs) == 0 {
		return wrapNode(ErrNoConnection, n.Name)
	}
	if len(t.sch.Predecessors(n.Name)) != 0 {
		return wrapNode(ErrInputHasPredecessor, n.Name)
	}

	if err := t.translateNode(n); err != nil {
		return err
	}

	if !n.MinFlowRate.Set() {
		var areas []expr.Expr
		for _, to := range succs {
			ch, _ := t.sch.Channel(n.Name, to)
			areas = append(areas, expr.Mul(ch.Width, ch.Height))
		}
		t.emit(physics.PortFlowRate(n.FlowRate, areas, n.Pressure, n.Density))
	}

	return nil
}

// translateOutput handles an output port. It terminates a branch: no
// outgoing channels, and its flow rate, unless pinned, is the sum of the
// incoming channel flows.
func (t *Translator) translateOutput(n *schematic.Node) error {
	preds := t.sch.Predecessors(n.Name)
	if len(preds) == 0 {
		return wrapNode(ErrNoConnection, n.Name)
	}
	if len(t.sch.Successors(n.Name)) != 0 {
		return wrapNode(ErrOutputHasSuccessor, n.Name)
	}

	if err := t.translateNode(n); err != nil {
		return err
	}

	if !n.MinFlowRate.Set() {
		var flows []expr.Expr
		for _, from := range preds {
			ch, _ := t.sch.Channel(from, n.Name)
			flows = append(flows, ch.FlowRate)
		}
		t.emit(expr.Eq(n.FlowRate, expr.Sum(flows...)))
	}

	return nil
}
