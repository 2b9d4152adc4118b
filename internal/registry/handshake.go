package registry

import "orewire-server/internal/codec"

// HandshakeNextState is the "next_state" field a client declares in the
// Handshake packet.
type HandshakeNextState int32

const (
	NextStateStatus   HandshakeNextState = 1
	NextStateLogin    HandshakeNextState = 2
	NextStateTransfer HandshakeNextState = 3
)

// Handshake is the sole packet in the Handshake state, id 0x00. It both
// selects the protocol version the client intends to speak and requests
// the next state to transition into.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       HandshakeNextState
}

func (*Handshake) ID() int32 { return 0x00 }

func (p *Handshake) Encode(buf *codec.ByteBuffer) {
	buf.WriteVarInt(p.ProtocolVersion)
	buf.WriteString(p.ServerAddress)
	buf.WriteU16(p.ServerPort)
	buf.WriteVarInt(int32(p.NextState))
}

func (p *Handshake) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.ProtocolVersion = v

	addr, err := buf.ReadString()
	if err != nil {
		return err
	}
	p.ServerAddress = addr

	port, err := buf.ReadU16()
	if err != nil {
		return err
	}
	p.ServerPort = port

	next, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.NextState = HandshakeNextState(next)
	return nil
}

var handshakeC2STable = Table{
	0x00: func() Packet { return &Handshake{} },
}
