// Package export renders solved schematics for downstream tools: a JSON
// document following the Manifold IR grammar, and a Modelica parameter
// mapping driven by a YAML name table.
package export

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/droplab/mfsat/schematic"
	"github.com/droplab/mfsat/solver"
)

// nodeAttrs and channelAttrs are the design variables reported per
// element, in emission order.
var nodeAttrs = []string{"pressure", "flow_rate", "viscosity", "density", "x", "y"}

var channelAttrs = []string{
	"length", "width", "height", "flow_rate",
	"droplet_volume", "viscosity", "resistance", "detector",
}

// Document is the root of the Manifold IR JSON grammar.
type Document struct {
	Name        string                `json:"name"`
	PortTypes   map[string]TypeEntry  `json:"portTypes"`
	NodeTypes   map[string]TypeEntry  `json:"nodeTypes"`
	Nodes       map[string]NodeEntry  `json:"nodes"`
	Connections map[string]Connection `json:"connections"`
}

// TypeEntry describes a port or node type and its solved attributes.
type TypeEntry struct {
	SignalType string                `json:"signalType"`
	Attributes map[string][2]float64 `json:"attributes"`
}

// NodeEntry is one placed element of the circuit.
type NodeEntry struct {
	Type       string                `json:"type"`
	PortAttrs  string                `json:"portAttrs"`
	Attributes map[string][2]float64 `json:"attributes"`
}

// Connection is one channel between two elements.
type Connection struct {
	From       string                `json:"from"`
	To         string                `json:"to"`
	Attributes map[string][2]float64 `json:"attributes"`
}

// IR builds the Manifold IR document for a schematic, attaching the
// solved interval of every design variable present in the model.
// Ports land in portTypes, junctions and plain nodes in nodeTypes;
// identifiers follow insertion order (pT0, pT1, ... and ch0, ch1, ...).
func IR(sch *schematic.Schematic, model solver.Model, name string) (*Document, error) {
	doc := &Document{
		Name:        name,
		PortTypes:   make(map[string]TypeEntry),
		NodeTypes:   make(map[string]TypeEntry),
		Nodes:       make(map[string]NodeEntry),
		Connections: make(map[string]Connection),
	}

	for i, n := range sch.Nodes() {
		id := "pT" + strconv.Itoa(i)
		attrs := make(map[string][2]float64)
		for _, attr := range nodeAttrs {
			v, err := sch.Attribute(schematic.NodeRef(n.Name), attr)
			if err != nil {
				return nil, err
			}
			if iv, ok := model[v.String()]; ok {
				attrs[attr] = [2]float64{iv.Lo, iv.Hi}
			}
		}

		kind := n.Kind.String()
		doc.Nodes[id] = NodeEntry{Type: kind, PortAttrs: n.Name, Attributes: attrs}
		entry := TypeEntry{SignalType: kind, Attributes: attrs}
		if n.Kind == schematic.KindInput || n.Kind == schematic.KindOutput {
			doc.PortTypes[id] = entry
		} else {
			doc.NodeTypes[id] = entry
		}
	}

	for i, ch := range sch.Channels() {
		id := "ch" + strconv.Itoa(i)
		attrs := make(map[string][2]float64)
		for _, attr := range channelAttrs {
			v, err := sch.Attribute(schematic.ChannelRef(ch.From, ch.To), attr)
			if err != nil {
				// Not every channel carries a detector.
				continue
			}
			if iv, ok := model[v.String()]; ok {
				attrs[attr] = [2]float64{iv.Lo, iv.Hi}
			}
		}
		doc.Connections[id] = Connection{From: ch.From, To: ch.To, Attributes: attrs}
	}

	return doc, nil
}

// MarshalIR renders the document as compact JSON.
func MarshalIR(sch *schematic.Schematic, model solver.Model, name string) ([]byte, error) {
	doc, err := IR(sch, model, name)
	if err != nil {
		return nil, err
	}

	return json.Marshal(doc)
}

// WriteIR writes the compact JSON document to w.
func WriteIR(w io.Writer, sch *schematic.Schematic, model solver.Model, name string) error {
	data, err := MarshalIR(sch, model, name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}
