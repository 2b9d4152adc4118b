package registry

import (
	"orewire-server/internal/codec"
	"orewire-server/internal/nbt"
)

// ClientInformation (C2S 0x00) is the client's locale/rendering/social
// preferences, sent once at the start of Configuration. ViewDistance is
// the client's own requested render distance; the server clamps it
// against its configured maximum before using it anywhere.
type ClientInformation struct {
	Locale              string
	ViewDistance        int8
	ChatMode            int32
	ChatColors          bool
	DisplayedSkinParts  uint8
	MainHand            int32
	EnableTextFiltering bool
	AllowServerListings bool
}

func (*ClientInformation) ID() int32 { return 0x00 }

func (p *ClientInformation) Encode(buf *codec.ByteBuffer) {
	buf.WriteString(p.Locale)
	buf.WriteI8(p.ViewDistance)
	buf.WriteVarInt(p.ChatMode)
	buf.WriteBool(p.ChatColors)
	buf.WriteU8(p.DisplayedSkinParts)
	buf.WriteVarInt(p.MainHand)
	buf.WriteBool(p.EnableTextFiltering)
	buf.WriteBool(p.AllowServerListings)
}

func (p *ClientInformation) Decode(buf *codec.ByteBuffer) error {
	var err error
	if p.Locale, err = buf.ReadString(); err != nil {
		return err
	}
	if p.ViewDistance, err = buf.ReadI8(); err != nil {
		return err
	}
	if p.ChatMode, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.ChatColors, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.DisplayedSkinParts, err = buf.ReadU8(); err != nil {
		return err
	}
	if p.MainHand, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.EnableTextFiltering, err = buf.ReadBool(); err != nil {
		return err
	}
	if p.AllowServerListings, err = buf.ReadBool(); err != nil {
		return err
	}
	return nil
}

// ConfigurationPluginMessage (C2S/S2C 0x02) carries an addon payload on a
// namespaced channel; the server only inspects the "minecraft:brand"
// channel (to log the client's mod-loader string) and otherwise ignores
// the content.
type ConfigurationPluginMessage struct {
	Channel codec.Identifier
	Data    []byte
}

func (*ConfigurationPluginMessage) ID() int32 { return 0x02 }

func (p *ConfigurationPluginMessage) Encode(buf *codec.ByteBuffer) {
	buf.WriteIdentifier(p.Channel)
	buf.WriteBytes(p.Data)
}

func (p *ConfigurationPluginMessage) Decode(buf *codec.ByteBuffer) error {
	id, err := buf.ReadIdentifier()
	if err != nil {
		return err
	}
	p.Channel = id
	p.Data = buf.ReadInferredByteArray()
	return nil
}

// AcknowledgeFinishConfiguration (C2S 0x03) moves the connection from
// Configuration into Play.
type AcknowledgeFinishConfiguration struct{}

func (*AcknowledgeFinishConfiguration) ID() int32                     { return 0x03 }
func (*AcknowledgeFinishConfiguration) Encode(*codec.ByteBuffer)       {}
func (*AcknowledgeFinishConfiguration) Decode(*codec.ByteBuffer) error { return nil }

// ConfigurationKeepAlive (C2S 0x04) echoes the i64 id of a server-sent
// configuration keep-alive. This server sends none.
type ConfigurationKeepAlive struct {
	ID_ int64
}

func (*ConfigurationKeepAlive) ID() int32 { return 0x04 }
func (p *ConfigurationKeepAlive) Encode(buf *codec.ByteBuffer) { buf.WriteI64(p.ID_) }
func (p *ConfigurationKeepAlive) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadI64()
	p.ID_ = v
	return err
}

// ConfigurationPong (C2S 0x05) answers ConfigurationPing. This server
// never sends a ConfigurationPing during Configuration and does not check
// the id of a ConfigurationPong.
type ConfigurationPong struct {
	ID_ int32
}

func (*ConfigurationPong) ID() int32 { return 0x05 }
func (p *ConfigurationPong) Encode(buf *codec.ByteBuffer) { buf.WriteI32(p.ID_) }
func (p *ConfigurationPong) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadI32()
	p.ID_ = v
	return err
}

// ResourcePackResponse (C2S 0x06) reports the client's reaction to a
// resource pack push. This server never pushes one, but a client may
// still send a stale response; decoded so it doesn't desync framing.
type ResourcePackResponse struct {
	UUID   [16]byte
	Result int32
}

func (*ResourcePackResponse) ID() int32 { return 0x06 }

func (p *ResourcePackResponse) Encode(buf *codec.ByteBuffer) {
	buf.WriteUUID(p.UUID)
	buf.WriteVarInt(p.Result)
}

func (p *ResourcePackResponse) Decode(buf *codec.ByteBuffer) error {
	uuid, err := buf.ReadUUID()
	if err != nil {
		return err
	}
	p.UUID = uuid
	result, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.Result = result
	return nil
}

// KnownPack identifies a data pack both sides already agree on, so the
// server can skip sending registry entries the client already has built
// in (this server always sends the full vanilla set regardless).
type KnownPack struct {
	Namespace string
	ID        string
	Version   string
}

// SelectKnownPacks is sent by both sides (S2C 0x0E, C2S 0x07) to negotiate
// which data pack versions are already known. This server never sends
// one and never acts on the client's, and ships every registry in full.
type SelectKnownPacks struct {
	Packs []KnownPack
}

func (*SelectKnownPacks) ID() int32 { return 0x07 }

func (p *SelectKnownPacks) Encode(buf *codec.ByteBuffer) {
	buf.WriteVarInt(int32(len(p.Packs)))
	for _, pk := range p.Packs {
		buf.WriteString(pk.Namespace)
		buf.WriteString(pk.ID)
		buf.WriteString(pk.Version)
	}
}

func (p *SelectKnownPacks) Decode(buf *codec.ByteBuffer) error {
	count, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.Packs = make([]KnownPack, count)
	for i := range p.Packs {
		if p.Packs[i].Namespace, err = buf.ReadString(); err != nil {
			return err
		}
		if p.Packs[i].ID, err = buf.ReadString(); err != nil {
			return err
		}
		if p.Packs[i].Version, err = buf.ReadString(); err != nil {
			return err
		}
	}
	return nil
}

// ConfigurationDisconnect (S2C 0x02) carries the kick reason as a
// network-mode NBT text component.
type ConfigurationDisconnect struct {
	ReasonNBT []byte
}

func (*ConfigurationDisconnect) ID() int32 { return 0x02 }
func (p *ConfigurationDisconnect) Encode(buf *codec.ByteBuffer) { buf.WriteBytes(p.ReasonNBT) }
func (p *ConfigurationDisconnect) Decode(buf *codec.ByteBuffer) error {
	p.ReasonNBT = buf.ReadInferredByteArray()
	return nil
}

// FinishConfiguration (S2C 0x03) has no fields; it prompts the client to
// send AcknowledgeFinishConfiguration back.
type FinishConfiguration struct{}

func (*FinishConfiguration) ID() int32                     { return 0x03 }
func (*FinishConfiguration) Encode(*codec.ByteBuffer)       {}
func (*FinishConfiguration) Decode(*codec.ByteBuffer) error { return nil }

// ConfigurationPing (S2C 0x05) is a server-initiated keep-alive distinct
// from Play's KeepAlive packet (Configuration uses an i32 id, not i64).
type ConfigurationPing struct {
	ID_ int32
}

func (*ConfigurationPing) ID() int32 { return 0x05 }
func (p *ConfigurationPing) Encode(buf *codec.ByteBuffer) { buf.WriteI32(p.ID_) }
func (p *ConfigurationPing) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadI32()
	p.ID_ = v
	return err
}

// RegistryEntry is one (id, optional NBT) pair within a RegistryData
// packet. A nil Data means "use the client's own built-in definition".
type RegistryEntry struct {
	ID   codec.Identifier
	Data []byte
}

// RegistryData (S2C 0x07) ships one full registry (dimension types,
// biomes, etc) as a list of network-mode NBT compounds, one per entry.
type RegistryData struct {
	RegistryID codec.Identifier
	Entries    []RegistryEntry
}

func (*RegistryData) ID() int32 { return 0x07 }

func (p *RegistryData) Encode(buf *codec.ByteBuffer) {
	buf.WriteIdentifier(p.RegistryID)
	buf.WriteVarInt(int32(len(p.Entries)))
	for _, e := range p.Entries {
		buf.WriteIdentifier(e.ID)
		buf.WriteBool(e.Data != nil)
		if e.Data != nil {
			buf.WriteBytes(e.Data)
		}
	}
}

func (p *RegistryData) Decode(buf *codec.ByteBuffer) error {
	id, err := buf.ReadIdentifier()
	if err != nil {
		return err
	}
	p.RegistryID = id
	count, err := buf.ReadVarInt()
	if err != nil {
		return err
	}
	p.Entries = make([]RegistryEntry, count)
	for i := range p.Entries {
		if p.Entries[i].ID, err = buf.ReadIdentifier(); err != nil {
			return err
		}
		hasData, err := buf.ReadBool()
		if err != nil {
			return err
		}
		if hasData {
			// Each entry's NBT document is self-delimiting (a Compound
			// always ends in an End tag) and packed back to back with no
			// length prefix of its own, so decode exactly one document
			// off the shared cursor and keep the raw bytes it consumed.
			start := buf.Cursor()
			if _, err := nbt.DecodeNetworkFrom(buf); err != nil {
				return err
			}
			p.Entries[i].Data = buf.Bytes()[start:buf.Cursor()]
		}
	}
	return nil
}

var configurationC2STable = Table{
	0x00: func() Packet { return &ClientInformation{} },
	0x02: func() Packet { return &ConfigurationPluginMessage{} },
	0x03: func() Packet { return &AcknowledgeFinishConfiguration{} },
	0x04: func() Packet { return &ConfigurationKeepAlive{} },
	0x05: func() Packet { return &ConfigurationPong{} },
	0x06: func() Packet { return &ResourcePackResponse{} },
	0x07: func() Packet { return &SelectKnownPacks{} },
}
