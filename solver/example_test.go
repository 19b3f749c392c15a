package solver_test

import (
	"context"
	"fmt"

	"github.com/droplab/mfsat/schematic"
	"github.com/droplab/mfsat/solver"
)

// ExampleSolve checks a single pressure-driven channel for feasibility.
// A stub backend stands in for dReal so the output is deterministic; drop
// the WithBackend option to use a dreal binary found on PATH.
func ExampleSolve() {
	sch := schematic.New(0, 0, 0.1, 0.1)
	_ = sch.AddPort("in", schematic.KindInput,
		schematic.WithPressure(2000),
		schematic.WithFluid("water"))
	_ = sch.AddPort("out", schematic.KindOutput)
	_ = sch.AddChannel("in", "out", schematic.WithWidth(0.0005))

	backend := &stubBackend{
		sat:   true,
		model: solver.Model{"in_out_length": {Lo: 0.001, Hi: 0.0015}},
	}

	res, err := solver.Solve(context.Background(), sch, solver.WithBackend(backend))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if res.NoSolution() {
		fmt.Println("unsat")
		return
	}

	iv := res.Model["in_out_length"]
	fmt.Printf("feasible length: [%g, %g]\n", iv.Lo, iv.Hi)

	// Output:
	// feasible length: [0.001, 0.0015]
}
