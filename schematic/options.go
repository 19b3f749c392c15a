package schematic

import "github.com/droplab/mfsat/fluid"

// PortOption configures an AddPort or AddNode call.
// Options only record values; validation happens inside Add* so that every
// builder error surfaces at the offending call site.
type PortOption func(*portConfig)

// portConfig accumulates the optional attributes of a node or port.
type portConfig struct {
	pressure Pin
	flowRate Pin
	x, y     Pin
	voltage  Pin
	current  Pin
	fluid    string
	kind     NodeKind
}

func defaultPortConfig() portConfig {
	return portConfig{fluid: fluid.Default, kind: KindNode}
}

// WithPressure pins the port pressure to p (Pa).
func WithPressure(p float64) PortOption {
	return func(c *portConfig) { c.pressure = PinAt(p) }
}

// WithFlowRate pins the port flow rate to q (m^3/s).
func WithFlowRate(q float64) PortOption {
	return func(c *portConfig) { c.flowRate = PinAt(q) }
}

// WithPosition pins the node position on the chip (m).
func WithPosition(x, y float64) PortOption {
	return func(c *portConfig) {
		c.x = PinAt(x)
		c.y = PinAt(y)
	}
}

// WithFluid selects the working fluid whose library defaults seed the port's
// viscosity and density pins. Unknown names are rejected by AddPort.
func WithFluid(name string) PortOption {
	return func(c *portConfig) { c.fluid = name }
}

// WithVoltage pins the electrode voltage of a port (V). Used by the
// electrophoretic cross to identify anode and cathode.
func WithVoltage(v float64) PortOption {
	return func(c *portConfig) { c.voltage = PinAt(v) }
}

// WithCurrent pins the electrode current of a port (A).
func WithCurrent(i float64) PortOption {
	return func(c *portConfig) { c.current = PinAt(i) }
}

// WithKind sets the node kind for AddNode (default KindNode).
// AddPort ignores this option: its kind is an explicit argument.
func WithKind(k NodeKind) PortOption {
	return func(c *portConfig) { c.kind = k }
}

// ChannelOption configures an AddChannel call.
type ChannelOption func(*channelConfig)

// channelConfig accumulates the optional attributes of a channel.
type channelConfig struct {
	length       Pin
	width        Pin
	height       Pin
	samplingRate Pin
	kind         ChannelKind
	phase        Phase
}

func defaultChannelConfig() channelConfig {
	return channelConfig{kind: Rectangle, phase: PhaseNone}
}

// WithLength pins the channel length to l (m).
func WithLength(l float64) ChannelOption {
	return func(c *channelConfig) { c.length = PinAt(l) }
}

// WithWidth pins the channel width to w (m).
func WithWidth(w float64) ChannelOption {
	return func(c *channelConfig) { c.width = PinAt(w) }
}

// WithHeight pins the channel height to h (m).
func WithHeight(h float64) ChannelOption {
	return func(c *channelConfig) { c.height = PinAt(h) }
}

// WithChannelKind sets the cross-section shape (default Rectangle).
func WithChannelKind(k ChannelKind) ChannelOption {
	return func(c *channelConfig) { c.kind = k }
}

// WithPhase tags the channel's role at a junction node.
func WithPhase(p Phase) ChannelOption {
	return func(c *channelConfig) { c.phase = p }
}

// WithSamplingRate pins the detector's minimum resolvable peak separation
// time (s) on a separation channel.
func WithSamplingRate(dt float64) ChannelOption {
	return func(c *channelConfig) { c.samplingRate = PinAt(dt) }
}
