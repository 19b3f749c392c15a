// Package mfsat checks microfluidic circuit designs for physical
// feasibility before fabrication.
//
// A circuit is described as a directed graph of ports, junction nodes and
// rectangular channels with optional pinned parameters (pressures, flow
// rates, positions, dimensions). mfsat compiles the description into a
// conjunction of nonlinear real-arithmetic constraints over the remaining
// free parameters and hands it to the dReal delta-decision procedure. The
// answer is either an interval model, giving a feasible range for every
// design variable, or a proof that no consistent design exists.
//
// The module is organized as a pipeline of subpackages:
//
//	expr/      — symbolic real expressions, constraints and SMT-LIB rendering
//	fluid/     — property library of working fluids and analyte samples
//	physics/   — constraint formulas: channel resistance, droplet volume,
//	             electrophoretic transport and detection
//	schematic/ — the circuit graph builder and its validation rules
//	translate/ — kind-dispatched compilation of a schematic into constraints
//	solver/    — backend interface, dReal subprocess adapter, Solve entry point
//	export/    — Manifold IR JSON and Modelica parameter output
//	cmd/mfsat  — the command line front end
//
// Quick example:
//
//	sch := schematic.New(0, 0, 0.1, 0.1)
//	sch.AddPort("in", schematic.KindInput,
//		schematic.WithPressure(2000),
//		schematic.WithFluid("water"))
//	sch.AddPort("out", schematic.KindOutput)
//	sch.AddChannel("in", "out", schematic.WithWidth(0.0005))
//
//	res, err := solver.Solve(ctx, sch)
//	if err != nil {
//		// invalid topology or solver failure
//	}
//	if res.Sat {
//		fmt.Println(res.Model["in_out_length"]) // feasible length interval
//	}
package mfsat
