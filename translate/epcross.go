package translate

import (
	"strconv"

	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/physics"
	"github.com/droplab/mfsat/schematic"
)

// epCross gathers the four arms of an electrophoretic cross around its
// junction node.
type epCross struct {
	sep, tail, inj, waste *schematic.Channel
	anode, cathode        *schematic.Node
	injNode, wasteNode    *schematic.Node
}

// translateEPCross emits the separation constraints of an electrophoretic
// cross: geometry coupling of the four arms, the driving electric field,
// and per-analyte peak resolvability at the detector.
func (t *Translator) translateEPCross(n *schematic.Node) error {
	preds := t.sch.Predecessors(n.Name)
	succs := t.sch.Successors(n.Name)
	if len(preds)+len(succs) != 4 {
		return wrapNode(ErrConnectionCount, n.Name)
	}

	if err := t.translateNode(n); err != nil {
		return err
	}

	cross, err := t.classifyEPCross(n)
	if err != nil {
		return err
	}

	// 1. Arm geometry: tail matches separation, injection matches waste,
	//    and injection shares the separation height.
	t.emit(
		expr.Eq(cross.tail.Width, cross.sep.Width),
		expr.Eq(cross.tail.Height, cross.sep.Height),
		expr.Eq(cross.inj.Width, cross.waste.Width),
		expr.Eq(cross.inj.Height, cross.waste.Height),
		expr.Eq(cross.inj.Height, cross.sep.Height),
	)

	// 2. Driving field E = dV / d over the cathode-to-anode path, with d
	//    the summed length of the channels along it.
	if !cross.anode.Voltage.Set() || !cross.cathode.Voltage.Set() {
		return wrapNode(ErrMissingVoltage, n.Name)
	}
	path := t.findPath(cross.cathode.Name, cross.anode.Name)
	if path == nil {
		return wrapNode(ErrNoPath, n.Name)
	}
	var lengths []expr.Expr
	for i := 0; i+1 < len(path); i++ {
		ch, _ := t.sch.Channel(path[i], path[i+1])
		lengths = append(lengths, ch.Length)
	}
	field := expr.Var(n.Name + "_E")
	t.emit(
		expr.Gt(field, expr.Lit(0)),
		expr.Lt(field, expr.Lit(maxField)),
		expr.Eq(field, physics.ElectricField(
			expr.Lit(cross.anode.Voltage.Value()),
			expr.Lit(cross.cathode.Voltage.Value()),
			expr.Sum(lengths...),
		)),
	)

	// 3. Analyte data rides on the injection port.
	set := cross.injNode.Analytes
	count := set.Len()
	if count == 0 ||
		len(set.InitialConcentration) != count ||
		len(set.Charge) != count ||
		len(set.Radius) != count {
		return wrapNode(ErrAnalyteData, n.Name)
	}

	return t.emitSeparation(n, cross, field)
}

// classifyEPCross identifies the four arms by phase tag and endpoint kind.
// The separation and tail channels carry explicit phases; the remaining
// arms are the injection inflow from an input port and the waste outflow
// to an output port.
func (t *Translator) classifyEPCross(n *schematic.Node) (*epCross, error) {
	var cross epCross
	for _, from := range t.sch.Predecessors(n.Name) {
		ch, _ := t.sch.Channel(from, n.Name)
		pred, _ := t.sch.Node(from)
		switch {
		case ch.Phase == schematic.PhaseTail:
			cross.tail, cross.cathode = ch, pred
		case pred.Kind == schematic.KindInput:
			cross.inj, cross.injNode = ch, pred
		}
	}
	for _, to := range t.sch.Successors(n.Name) {
		ch, _ := t.sch.Channel(n.Name, to)
		succ, _ := t.sch.Node(to)
		switch {
		case ch.Phase == schematic.PhaseSeparation:
			cross.sep, cross.anode = ch, succ
		case ch.Phase == schematic.PhaseTail:
			cross.tail, cross.cathode = ch, succ
		case succ.Kind == schematic.KindOutput && cross.waste == nil:
			cross.waste, cross.wasteNode = ch, succ
		}
	}
	if cross.sep == nil || cross.tail == nil || cross.inj == nil || cross.waste == nil {
		return nil, wrapNode(ErrPhaseTag, n.Name)
	}

	return &cross, nil
}

// emitSeparation emits the per-analyte transport and peak resolvability
// constraints at the detector along the separation channel.
func (t *Translator) emitSeparation(n *schematic.Node, cross *epCross, field expr.Expr) error {
	set := cross.injNode.Analytes
	count := set.Len()
	prefix := n.Name + "_"

	xDet := cross.sep.Detector
	width := cross.inj.Width

	delta := 0.0
	if cross.sep.SamplingRate.Set() {
		delta = cross.sep.SamplingRate.Value()
	}

	// 1. Per-analyte mobility, migration velocity and peak arrival time.
	mu := make([]expr.Expr, count)
	vel := make([]expr.Expr, count)
	tPeak := make([]expr.Expr, count)
	tMin := make([]expr.Expr, count)
	for i := 0; i < count; i++ {
		idx := strconv.Itoa(i)
		mu[i] = expr.Var(prefix + "mu_" + idx)
		vel[i] = expr.Var(prefix + "v_" + idx)
		tPeak[i] = expr.Var(prefix + "t_peak_" + idx)
		tMin[i] = expr.Var(prefix + "t_min_" + idx)

		t.emit(
			expr.Gt(mu[i], expr.Lit(0)),
			expr.Lt(mu[i], expr.Lit(maxMobility)),
			expr.Eq(mu[i], physics.Mobility(cross.sep.Viscosity, expr.Lit(set.Charge[i]), expr.Lit(set.Radius[i]))),
			expr.Gt(vel[i], expr.Lit(0)),
			expr.Eq(vel[i], physics.ParticleVelocity(mu[i], field)),
			expr.Gt(tPeak[i], expr.Lit(0)),
			expr.Lt(tPeak[i], expr.Lit(maxTime)),
			expr.Gt(tMin[i], expr.Lit(0)),
			expr.Lt(tMin[i], expr.Lit(maxTime)),
			expr.Eq(tPeak[i], expr.Div(xDet, vel[i])),
		)
	}

	// 2. The detector sits somewhere along the separation channel.
	t.emit(expr.Le(xDet, cross.sep.Length))

	// 3. Concentration floor below which a peak is treated as noise.
	//    sigma0 follows the round-channel relation W/(2*2.355).
	sigma0 := expr.Var(prefix + "sigma0")
	cFloor := expr.Var(prefix + "C_floor")
	cNegligible := expr.Var(prefix + "C_negligible")
	minC0, maxD := set.InitialConcentration[0], set.Diffusivity[0]
	for i := 1; i < count; i++ {
		if set.InitialConcentration[i] < minC0 {
			minC0 = set.InitialConcentration[i]
		}
		if set.Diffusivity[i] > maxD {
			maxD = set.Diffusivity[i]
		}
	}
	t.emit(
		expr.Eq(sigma0, expr.Div(width, expr.Lit(sigmaFactor))),
		expr.Eq(cFloor, expr.Div(
			expr.Lit(minC0),
			expr.Add(sigma0, expr.Sqrt(expr.Div(
				expr.Mul(expr.Lit(2*maxD), xDet),
				vel[count-1],
			))),
		)),
		expr.Eq(cNegligible, expr.Mul(expr.Lit(t.opts.ResolutionP), cFloor)),
	)

	// Shared spillover term for the peak-ratio constraints. The factor
	// degenerates for fewer than four analytes and is dropped there.
	spill := 0.0
	if count > 3 {
		spill = float64(count-2) * (1 - t.opts.ResolutionQF) / float64(count-3)
	}

	// 4. Adjacent-pair resolvability.
	for i := 0; i+1 < count; i++ {
		concI := func(at expr.Expr) expr.Expr {
			return physics.Concentration(expr.Lit(set.InitialConcentration[i]),
				expr.Lit(set.Diffusivity[i]), width, vel[i], xDet, at)
		}
		concNext := func(at expr.Expr) expr.Expr {
			return physics.Concentration(expr.Lit(set.InitialConcentration[i+1]),
				expr.Lit(set.Diffusivity[i+1]), width, vel[i+1], xDet, at)
		}

		// Peaks are separated by at least the detector sampling interval.
		t.emit(
			expr.Lt(expr.Add(tPeak[i], expr.Lit(delta)), tMin[i]),
			expr.Lt(expr.Add(tPeak[i], expr.Lit(delta)), tMin[i+1]),
		)

		// diff quantifies how close the two peak heights are. Near-equal
		// peaks (0.1 < diff < 10) allow the valley to be placed where the
		// two profiles intersect; otherwise it sits where the summed
		// profile slope vanishes.
		diff := expr.Var(prefix + "diff_" + strconv.Itoa(i))
		t.emit(expr.Eq(diff, expr.Mul(
			expr.Lit(set.InitialConcentration[i]/set.InitialConcentration[i+1]),
			expr.Sqrt(expr.Div(
				expr.Mul(expr.Lit(set.Diffusivity[i+1]), mu[i]),
				expr.Mul(expr.Lit(set.Diffusivity[i]), mu[i+1]),
			)),
		)))

		tName := prefix + "t_min_" + strconv.Itoa(i)
		dI, err := expr.Deriv(concI(tMin[i]), tName)
		if err != nil {
			return err
		}
		dNext, err := expr.Deriv(concNext(tMin[i]), tName)
		if err != nil {
			return err
		}
		valley := expr.Ite(
			expr.And(expr.Lt(expr.Lit(0.1), diff), expr.Lt(diff, expr.Lit(10))),
			expr.Sub(concI(tMin[i]), concNext(tMin[i])),
			expr.Add(dI, dNext),
		)
		t.emit(expr.Eq(valley, expr.Lit(0)))

		// Valley-to-peak ratio against both neighboring peaks.
		valleySum := expr.Add(
			expr.Add(concI(tMin[i]), concNext(tMin[i])),
			expr.Mul(expr.Lit(spill), cNegligible),
		)
		t.emit(
			expr.Le(expr.Div(valleySum, concI(tPeak[i])), expr.Lit(t.opts.ResolutionC)),
			expr.Le(expr.Div(valleySum, concNext(tPeak[i+1])), expr.Lit(t.opts.ResolutionC)),
		)
	}

	// 5. Continue the walk at the waste and anode arms.
	if err := t.visitNode(cross.wasteNode.Name); err != nil {
		return err
	}

	return t.visitNode(cross.anode.Name)
}
