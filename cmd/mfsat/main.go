// Command mfsat checks microfluidic circuit designs for physical
// feasibility. It reads a JSON circuit description, compiles it into
// nonlinear real constraints and asks dReal whether a consistent set of
// physical parameters exists.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/droplab/mfsat/export"
	"github.com/droplab/mfsat/solver"
	"github.com/droplab/mfsat/translate"
)

var (
	precision   float64
	drealPath   string
	debug       bool
	critAngle   float64
	irPath      string
	mappingPath string
	modelicaOut string

	rootCmd = &cobra.Command{
		Use:   "mfsat",
		Short: "Feasibility checking for microfluidic circuit designs",
		Long: `mfsat compiles a microfluidic circuit description into nonlinear
real-arithmetic constraints and decides with dReal whether the design
admits a consistent assignment of pressures, flows and geometry.`,
	}

	solveCmd = &cobra.Command{
		Use:   "solve [circuit.json]",
		Short: "Solve a circuit and report parameter intervals or unsat",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}

	smtCmd = &cobra.Command{
		Use:   "smt2 [circuit.json]",
		Short: "Print the SMT-LIB rendering of a circuit's constraints",
		Args:  cobra.ExactArgs(1),
		RunE:  runSMT,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log traversal and solver invocations to stderr")
	rootCmd.PersistentFlags().Float64Var(&precision, "precision", solver.DefaultPrecision, "delta-decision precision")
	rootCmd.PersistentFlags().Float64Var(&critAngle, "crit-angle", 0.5, "critical droplet crossing angle in degrees")

	solveCmd.Flags().StringVar(&drealPath, "dreal", "", "path to the dreal binary (defaults to PATH lookup)")
	solveCmd.Flags().StringVar(&irPath, "ir", "", "write the solved circuit as Manifold IR JSON to this file")
	solveCmd.Flags().StringVar(&mappingPath, "modelica-map", "", "YAML table mapping Modelica parameters to design variables")
	solveCmd.Flags().StringVar(&modelicaOut, "modelica-out", "", "write Modelica parameter assignments to this file")

	rootCmd.AddCommand(solveCmd, smtCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runSolve(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	sch, name, err := loadCircuit(f)
	if err != nil {
		return err
	}

	opts := []solver.Option{
		solver.WithPrecision(precision),
		solver.WithLogger(logger()),
		solver.WithTranslateOptions(translate.WithCritAngle(critAngle)),
	}
	if drealPath != "" {
		opts = append(opts, solver.WithBackend(&solver.DReal{Path: drealPath, Logger: logger()}))
	}

	res, err := solver.Solve(cmd.Context(), sch, opts...)
	if err != nil {
		return err
	}
	if !res.Sat {
		fmt.Fprintln(cmd.OutOrStdout(), "unsat")

		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "delta-sat")
	names := make([]string, 0, len(res.Model))
	for v := range res.Model {
		names = append(names, v)
	}
	sort.Strings(names)
	for _, v := range names {
		iv := res.Model[v]
		fmt.Fprintf(cmd.OutOrStdout(), "%s : [ %g, %g ]\n", v, iv.Lo, iv.Hi)
	}

	if irPath != "" {
		data, err := export.MarshalIR(sch, res.Model, name)
		if err != nil {
			return err
		}
		if err := os.WriteFile(irPath, data, 0o644); err != nil {
			return err
		}
	}

	if mappingPath != "" && modelicaOut != "" {
		mf, err := os.Open(mappingPath)
		if err != nil {
			return err
		}
		defer mf.Close()

		mapping, err := export.LoadMapping(mf)
		if err != nil {
			return err
		}
		params, err := export.Modelica(mapping, res.Model)
		if err != nil {
			return err
		}
		if err := os.WriteFile(modelicaOut, []byte(params), 0o644); err != nil {
			return err
		}
	}

	return nil
}

func runSMT(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	sch, _, err := loadCircuit(f)
	if err != nil {
		return err
	}

	cs, err := translate.New(sch,
		translate.WithCritAngle(critAngle),
		translate.WithLogger(logger()),
	).Translate()
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), solver.Script(cs, precision))

	return nil
}
