package translate

import (
	"math"

	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/physics"
	"github.com/droplab/mfsat/schematic"
)

// translateTJunction emits the droplet generation constraints of a
// T-junction. The junction needs exactly three channels: a continuous
// phase inflow, a dispersed phase inflow and one droplet outflow.
func (t *Translator) translateTJunction(n *schematic.Node) error {
	preds := t.sch.Predecessors(n.Name)
	succs := t.sch.Successors(n.Name)
	if len(preds)+len(succs) != 3 || len(succs) != 1 {
		return wrapNode(ErrConnectionCount, n.Name)
	}

	if err := t.translateNode(n); err != nil {
		return err
	}

	outName := succs[0]
	outNode, _ := t.sch.Node(outName)
	outCh, _ := t.sch.Channel(n.Name, outName)

	// 1. Classify the two inflows by phase tag.
	var contNode, dispNode *schematic.Node
	var contCh, dispCh *schematic.Channel
	for _, from := range preds {
		ch, _ := t.sch.Channel(from, n.Name)
		pred, _ := t.sch.Node(from)
		switch ch.Phase {
		case schematic.PhaseContinuous:
			contNode, contCh = pred, ch
		case schematic.PhaseDispersed:
			dispNode, dispCh = pred, ch
		default:
			return wrapNode(ErrPhaseTag, n.Name)
		}
	}
	if contCh == nil || dispCh == nil {
		return wrapNode(ErrPhaseTag, n.Name)
	}

	// 2. Geometry coupling: the continuous channel matches the outlet in
	//    both dimensions, the dispersed channel only in height.
	t.emit(
		expr.Eq(contCh.Width, outCh.Width),
		expr.Eq(contCh.Height, outCh.Height),
		expr.Eq(dispCh.Height, outCh.Height),
	)

	// 3. Corner sharpness, epsilon = 0.01 w per van Steijn et al.
	epsilon := expr.Var(n.Name + "_epsilon")
	t.emit(expr.Eq(epsilon, expr.Mul(contCh.Width, expr.Lit(epsilonFactor))))

	// 4. The continuous phase dominates the outlet, so its viscosity
	//    carries through.
	t.emit(expr.Eq(contNode.Viscosity, outNode.Viscosity))

	// 5. Flow conservation across the junction.
	t.emit(expr.Eq(expr.Add(contCh.FlowRate, dispCh.FlowRate), outCh.FlowRate))

	// 6. Continuous inflow and outflow lie on a straight line through the
	//    junction.
	t.emit(physics.StraightLine(contNode.X, contNode.Y, n.X, n.Y, outNode.X, outNode.Y))

	// 7. Droplet volume produced in the outlet channel.
	t.emit(expr.Eq(outCh.DropletVolume, physics.DropletVolume(
		outCh.Height, outCh.Width, dispCh.Width, epsilon,
		dispNode.FlowRate, contNode.FlowRate,
	)))

	// 8. Every pair of adjacent channels must cross at more than the
	//    critical angle, expressed through cos^2 via the law of cosines.
	rad := t.opts.CritAngleDeg * math.Pi / 180
	cosSq := expr.Lit(math.Cos(rad) * math.Cos(rad))
	t.emit(
		expr.Le(cosSq, physics.CosSquaredAngle(contNode.X, contNode.Y, n.X, n.Y, dispNode.X, dispNode.Y)),
		expr.Le(cosSq, physics.CosSquaredAngle(contNode.X, contNode.Y, n.X, n.Y, outNode.X, outNode.Y)),
		expr.Le(cosSq, physics.CosSquaredAngle(outNode.X, outNode.Y, n.X, n.Y, dispNode.X, dispNode.Y)),
	)

	// 9. The base walk already visited the outlet channel; this visits the
	//    outlet node in case the channel handler was skipped as seen.
	return t.visitNode(outName)
}
