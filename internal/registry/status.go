package registry

import "orewire-server/internal/codec"

// StatusRequest (C2S 0x00) carries no fields; the client sends it right
// after a Handshake requesting the Status state to learn the server's
// MOTD and player count before deciding whether to log in.
type StatusRequest struct{}

func (*StatusRequest) ID() int32                    { return 0x00 }
func (*StatusRequest) Encode(*codec.ByteBuffer)      {}
func (*StatusRequest) Decode(*codec.ByteBuffer) error { return nil }

// StatusResponse (S2C 0x00) answers with a JSON document matching the
// vanilla server-list-ping schema (version/players/description/favicon).
type StatusResponse struct {
	JSON string
}

func (*StatusResponse) ID() int32 { return 0x00 }

func (p *StatusResponse) Encode(buf *codec.ByteBuffer) {
	buf.WriteString(p.JSON)
}

func (p *StatusResponse) Decode(buf *codec.ByteBuffer) error {
	s, err := buf.ReadString()
	if err != nil {
		return err
	}
	p.JSON = s
	return nil
}

// StatusPingRequest (C2S 0x01) and StatusPingResponse (S2C 0x01) are an
// arbitrary i64 echoed back verbatim, used by clients to estimate
// latency on the server-list screen.
type StatusPingRequest struct {
	Payload int64
}

func (*StatusPingRequest) ID() int32 { return 0x01 }
func (p *StatusPingRequest) Encode(buf *codec.ByteBuffer) { buf.WriteI64(p.Payload) }
func (p *StatusPingRequest) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadI64()
	p.Payload = v
	return err
}

type StatusPingResponse struct {
	Payload int64
}

func (*StatusPingResponse) ID() int32 { return 0x01 }
func (p *StatusPingResponse) Encode(buf *codec.ByteBuffer) { buf.WriteI64(p.Payload) }
func (p *StatusPingResponse) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadI64()
	p.Payload = v
	return err
}

var statusC2STable = Table{
	0x00: func() Packet { return &StatusRequest{} },
	0x01: func() Packet { return &StatusPingRequest{} },
}
