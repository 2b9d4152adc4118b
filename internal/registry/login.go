package registry

import "orewire-server/internal/codec"

// LoginStart (C2S 0x00) supplies the username and offline-mode UUID the
// client wants to play as.
type LoginStart struct {
	Name string
	UUID [16]byte
}

func (*LoginStart) ID() int32 { return 0x00 }

func (p *LoginStart) Encode(buf *codec.ByteBuffer) {
	buf.WriteString(p.Name)
	buf.WriteUUID(p.UUID)
}

func (p *LoginStart) Decode(buf *codec.ByteBuffer) error {
	name, err := buf.ReadString()
	if err != nil {
		return err
	}
	p.Name = name
	uuid, err := buf.ReadUUID()
	if err != nil {
		return err
	}
	p.UUID = uuid
	return nil
}

// LoginPluginResponse (C2S 0x02) answers a PluginRequest; unused by this
// server (it never sends one) but decoded so an unsolicited one from a
// modded client doesn't desync framing.
type LoginPluginResponse struct {
	MessageID  int32
	Successful bool
	Data       []byte
}

func (*LoginPluginResponse) ID() int32 { return 0x02 }

func (p *LoginPluginResponse) Encode(buf *codec.ByteBuffer) {
	buf.WriteVarInt(p.MessageID)
	buf.WriteBool(p.Successful)
	buf.WriteBytes(p.Data)
}

func (p *LoginPluginResponse) Decode(buf *codec.ByteBuffer) error {
	id, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.MessageID = id
	ok, err := buf.ReadBool()
	if err != nil {
		return err
	}
	p.Successful = ok
	p.Data = buf.ReadInferredByteArray()
	return nil
}

// LoginAcknowledged (C2S 0x03) has no fields; receiving it is what moves
// a connection from Login into Configuration.
type LoginAcknowledged struct{}

func (*LoginAcknowledged) ID() int32                     { return 0x03 }
func (*LoginAcknowledged) Encode(*codec.ByteBuffer)       {}
func (*LoginAcknowledged) Decode(*codec.ByteBuffer) error { return nil }

// LoginDisconnect (S2C 0x00) carries the kick reason as a network-mode
// NBT text component, encoded already by internal/text.
type LoginDisconnect struct {
	ReasonNBT []byte
}

func (*LoginDisconnect) ID() int32 { return 0x00 }
func (p *LoginDisconnect) Encode(buf *codec.ByteBuffer) { buf.WriteBytes(p.ReasonNBT) }
func (p *LoginDisconnect) Decode(buf *codec.ByteBuffer) error {
	p.ReasonNBT = buf.ReadInferredByteArray()
	return nil
}

// LoginSuccess (S2C 0x02) finalizes authentication. Properties is left
// empty (no signed skin/cape data, matching an offline-mode server).
type LoginSuccess struct {
	UUID                 [16]byte
	Username             string
	Properties           []LoginProperty
	StrictErrorHandling bool
}

// LoginProperty is one entry of LoginSuccess's property array (skin,
// cape, etc). Unused today but decoded/encoded for completeness.
type LoginProperty struct {
	Name      string
	Value     string
	Signature *string
}

func (*LoginSuccess) ID() int32 { return 0x02 }

func (p *LoginSuccess) Encode(buf *codec.ByteBuffer) {
	buf.WriteUUID(p.UUID)
	buf.WriteString(p.Username)
	buf.WriteVarInt(int32(len(p.Properties)))
	for _, prop := range p.Properties {
		buf.WriteString(prop.Name)
		buf.WriteString(prop.Value)
		buf.WriteBool(prop.Signature != nil)
		if prop.Signature != nil {
			buf.WriteString(*prop.Signature)
		}
	}
	buf.WriteBool(p.StrictErrorHandling)
}

func (p *LoginSuccess) Decode(buf *codec.ByteBuffer) error {
	uuid, err := buf.ReadUUID()
	if err != nil {
		return err
	}
	p.UUID = uuid
	name, err := buf.ReadString()
	if err != nil {
		return err
	}
	p.Username = name
	count, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.Properties = make([]LoginProperty, 0, count)
	for i := int32(0); i < count; i++ {
		var prop LoginProperty
		if prop.Name, err = buf.ReadString(); err != nil {
			return err
		}
		if prop.Value, err = buf.ReadString(); err != nil {
			return err
		}
		hasSig, err := buf.ReadBool()
		if err != nil {
			return err
		}
		if hasSig {
			sig, err := buf.ReadString()
			if err != nil {
				return err
			}
			prop.Signature = &sig
		}
		p.Properties = append(p.Properties, prop)
	}
	strict, err := buf.ReadBool()
	if err != nil {
		return err
	}
	p.StrictErrorHandling = strict
	return nil
}

// SetCompression (S2C 0x03) announces the compression threshold; must
// always be sent through the uncompressed envelope since the client
// isn't using the compressed one yet when it arrives.
type SetCompression struct {
	Threshold int32
}

func (*SetCompression) ID() int32 { return 0x03 }
func (p *SetCompression) Encode(buf *codec.ByteBuffer) { buf.WriteVarInt(p.Threshold) }
func (p *SetCompression) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadVarInt()
	p.Threshold = v
	return err
}

var loginC2STable = Table{
	0x00: func() Packet { return &LoginStart{} },
	0x02: func() Packet { return &LoginPluginResponse{} },
	0x03: func() Packet { return &LoginAcknowledged{} },
}
