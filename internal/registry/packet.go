// Package registry catalogs every packet type the server speaks, grouped
// by protocol state, with explicit field-order Encode/Decode methods per
// packet rather than reflection over struct tags.
package registry

import "orewire-server/internal/codec"

// ProtocolVersion and VersionName identify this server in the Status
// response. The client's handshake protocol version is not checked
// against them.
const (
	ProtocolVersion = 767
	VersionName     = "1.21.1"
)

// State is one of the five protocol phases a connection moves through.
type State uint8

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StateConfiguration
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "Handshake"
	case StateStatus:
		return "Status"
	case StateLogin:
		return "Login"
	case StateConfiguration:
		return "Configuration"
	case StatePlay:
		return "Play"
	default:
		return "Unknown"
	}
}

// Bound is the direction a packet travels.
type Bound uint8

const (
	C2S Bound = iota
	S2C
)

// Packet is implemented by every typed packet. ID is fixed per type;
// Encode/Decode (de)serialize just the packet's own fields, the id and
// envelope are handled by internal/framing.
type Packet interface {
	ID() int32
	Encode(buf *codec.ByteBuffer)
	Decode(buf *codec.ByteBuffer) error
}

// Factory constructs a zero-valued instance of a C2S packet type so its
// Decode method can be called against incoming bytes.
type Factory func() Packet

// Table maps packet ids to factories for a single (state, bound) pair.
type Table map[int32]Factory

// Dispatcher holds the full set of C2S packet tables, one per state, so
// internal/conn can look up how to decode an incoming frame purely from
// its current state and the frame's packet id.
type Dispatcher struct {
	tables [5]Table
}

// NewDispatcher builds a Dispatcher pre-populated with every C2S packet
// this server understands.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{}
	d.tables[StateHandshake] = handshakeC2STable
	d.tables[StateStatus] = statusC2STable
	d.tables[StateLogin] = loginC2STable
	d.tables[StateConfiguration] = configurationC2STable
	d.tables[StatePlay] = playC2STable
	return d
}

// Lookup returns a factory for the given state and packet id, or ok=false
// if no C2S packet is registered there (the caller should drop the
// frame rather than guess at its shape).
func (d *Dispatcher) Lookup(state State, id int32) (Factory, bool) {
	table := d.tables[state]
	if table == nil {
		return nil, false
	}
	f, ok := table[id]
	return f, ok
}
