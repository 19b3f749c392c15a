package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/droplab/mfsat/schematic"
)

// circuitFile is the JSON description of a circuit accepted on input.
type circuitFile struct {
	Name     string        `json:"name"`
	Chip     chipSpec      `json:"chip"`
	Nodes    []nodeSpec    `json:"nodes"`
	Channels []channelSpec `json:"channels"`
}

type chipSpec struct {
	XMin float64 `json:"xMin"`
	YMin float64 `json:"yMin"`
	XMax float64 `json:"xMax"`
	YMax float64 `json:"yMax"`
}

// nodeSpec describes one node. Absent pointers leave the parameter free
// for the solver.
type nodeSpec struct {
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	Pressure *float64    `json:"pressure,omitempty"`
	FlowRate *float64    `json:"flowRate,omitempty"`
	Position *[2]float64 `json:"position,omitempty"`
	Fluid    string      `json:"fluid,omitempty"`
	Voltage  *float64    `json:"voltage,omitempty"`
	Current  *float64    `json:"current,omitempty"`
}

type channelSpec struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Phase        string   `json:"phase,omitempty"`
	Length       *float64 `json:"length,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	SamplingRate *float64 `json:"samplingRate,omitempty"`
}

var nodeKinds = map[string]schematic.NodeKind{
	"node":     schematic.KindNode,
	"input":    schematic.KindInput,
	"output":   schematic.KindOutput,
	"tjunc":    schematic.KindTJunction,
	"ep_cross": schematic.KindEPCross,
}

var phases = map[string]schematic.Phase{
	"":           schematic.PhaseNone,
	"continuous": schematic.PhaseContinuous,
	"dispersed":  schematic.PhaseDispersed,
	"output":     schematic.PhaseOutput,
	"tail":       schematic.PhaseTail,
	"separation": schematic.PhaseSeparation,
}

// loadCircuit decodes a circuit description and replays it onto a fresh
// schematic.
func loadCircuit(r io.Reader) (*schematic.Schematic, string, error) {
	var file circuitFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, "", fmt.Errorf("parse circuit: %w", err)
	}

	sch := schematic.New(file.Chip.XMin, file.Chip.YMin, file.Chip.XMax, file.Chip.YMax)

	for _, n := range file.Nodes {
		kind, ok := nodeKinds[n.Kind]
		if !ok {
			return nil, "", fmt.Errorf("node %s: unknown kind %q", n.Name, n.Kind)
		}

		var opts []schematic.PortOption
		if n.Pressure != nil {
			opts = append(opts, schematic.WithPressure(*n.Pressure))
		}
		if n.FlowRate != nil {
			opts = append(opts, schematic.WithFlowRate(*n.FlowRate))
		}
		if n.Position != nil {
			opts = append(opts, schematic.WithPosition(n.Position[0], n.Position[1]))
		}
		if n.Fluid != "" {
			opts = append(opts, schematic.WithFluid(n.Fluid))
		}
		if n.Voltage != nil {
			opts = append(opts, schematic.WithVoltage(*n.Voltage))
		}
		if n.Current != nil {
			opts = append(opts, schematic.WithCurrent(*n.Current))
		}

		var err error
		switch kind {
		case schematic.KindInput, schematic.KindOutput:
			err = sch.AddPort(n.Name, kind, opts...)
		default:
			err = sch.AddNode(n.Name, append(opts, schematic.WithKind(kind))...)
		}
		if err != nil {
			return nil, "", fmt.Errorf("node %s: %w", n.Name, err)
		}
	}

	for _, c := range file.Channels {
		phase, ok := phases[c.Phase]
		if !ok {
			return nil, "", fmt.Errorf("channel %s->%s: unknown phase %q", c.From, c.To, c.Phase)
		}

		opts := []schematic.ChannelOption{schematic.WithPhase(phase)}
		if c.Length != nil {
			opts = append(opts, schematic.WithLength(*c.Length))
		}
		if c.Width != nil {
			opts = append(opts, schematic.WithWidth(*c.Width))
		}
		if c.Height != nil {
			opts = append(opts, schematic.WithHeight(*c.Height))
		}
		if c.SamplingRate != nil {
			opts = append(opts, schematic.WithSamplingRate(*c.SamplingRate))
		}

		if err := sch.AddChannel(c.From, c.To, opts...); err != nil {
			return nil, "", fmt.Errorf("channel %s->%s: %w", c.From, c.To, err)
		}
	}

	return sch, file.Name, nil
}
