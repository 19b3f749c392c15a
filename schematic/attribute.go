package schematic

import (
	"fmt"

	"github.com/droplab/mfsat/expr"
)

// Ref addresses either a node (Node set) or a channel (From and To set);
// use NodeRef and ChannelRef to construct one.
type Ref struct {
	Node     string
	From, To string
}

// NodeRef addresses the named node.
func NodeRef(name string) Ref { return Ref{Node: name} }

// ChannelRef addresses the channel on the ordered pair (from, to).
func ChannelRef(from, to string) Ref { return Ref{From: from, To: to} }

// Attribute returns the symbolic unknown registered under attr for the
// referenced node or channel. Node attributes: pressure, flow_rate,
// viscosity, density, x, y. Channel attributes: length, width, height,
// flow_rate, droplet_volume, viscosity, resistance, detector.
func (s *Schematic) Attribute(ref Ref, attr string) (expr.Expr, error) {
	if ref.Node != "" {
		n, ok := s.nodes[ref.Node]
		if !ok {
			return nil, fmt.Errorf("Attribute: %w: %q", ErrNodeNotFound, ref.Node)
		}

		return nodeAttr(n, attr)
	}

	ch, ok := s.channels[pair{from: ref.From, to: ref.To}]
	if !ok {
		return nil, fmt.Errorf("Attribute: %w: %q->%q", ErrChannelNotFound, ref.From, ref.To)
	}

	return channelAttr(ch, attr)
}

func nodeAttr(n *Node, attr string) (expr.Expr, error) {
	switch attr {
	case "pressure":
		return n.Pressure, nil
	case "flow_rate":
		return n.FlowRate, nil
	case "viscosity":
		return n.Viscosity, nil
	case "density":
		return n.Density, nil
	case "x":
		return n.X, nil
	case "y":
		return n.Y, nil
	default:
		return nil, fmt.Errorf("Attribute(%q): %w: %q", n.Name, ErrUnknownAttribute, attr)
	}
}

func channelAttr(ch *Channel, attr string) (expr.Expr, error) {
	switch attr {
	case "length":
		return ch.Length, nil
	case "width":
		return ch.Width, nil
	case "height":
		return ch.Height, nil
	case "flow_rate":
		return ch.FlowRate, nil
	case "droplet_volume":
		return ch.DropletVolume, nil
	case "viscosity":
		return ch.Viscosity, nil
	case "resistance":
		return ch.Resistance, nil
	case "detector":
		if ch.Detector == nil {
			return nil, fmt.Errorf("Attribute(%q->%q): %w: detector only on separation channels",
				ch.From, ch.To, ErrUnknownAttribute)
		}

		return ch.Detector, nil
	default:
		return nil, fmt.Errorf("Attribute(%q->%q): %w: %q", ch.From, ch.To, ErrUnknownAttribute, attr)
	}
}
