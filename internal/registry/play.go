package registry

import "orewire-server/internal/codec"

// TeleportID is the random correlation id a SynchronizePlayerPosition
// carries out and ConfirmTeleportation echoes back, so a late ack from a
// stale teleport request can be told apart from the current one.
type TeleportID struct {
	ID int32
}

// ConfirmTeleportation (C2S 0x00) acknowledges a previously sent
// SynchronizePlayerPosition.
type ConfirmTeleportation struct {
	TeleportID int32
}

func (*ConfirmTeleportation) ID() int32 { return 0x00 }
func (p *ConfirmTeleportation) Encode(buf *codec.ByteBuffer) { buf.WriteVarInt(p.TeleportID) }
func (p *ConfirmTeleportation) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadVarInt()
	p.TeleportID = v
	return err
}

// SetPlayerPosition (C2S 0x1A) is the client's unprompted movement
// update; the server applies its own anti-cheat gate before accepting it.
type SetPlayerPosition struct {
	X, Y, Z  float64
	OnGround bool
}

func (*SetPlayerPosition) ID() int32 { return 0x1A }

func (p *SetPlayerPosition) Encode(buf *codec.ByteBuffer) {
	buf.WriteF64(p.X)
	buf.WriteF64(p.Y)
	buf.WriteF64(p.Z)
	buf.WriteBool(p.OnGround)
}

func (p *SetPlayerPosition) Decode(buf *codec.ByteBuffer) error {
	var err error
	if p.X, err = buf.ReadF64(); err != nil {
		return err
	}
	if p.Y, err = buf.ReadF64(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadF64(); err != nil {
		return err
	}
	if p.OnGround, err = buf.ReadBool(); err != nil {
		return err
	}
	return nil
}

// PlayPingRequest (C2S 0x21) and PingResponse (S2C 0x36) are an arbitrary
// u64 echoed back, distinct from the PlayPing/PlayPong keep-alive pair
// below — this one exists purely so a client can measure round trip time
// on demand.
type PlayPingRequest struct {
	Payload uint64
}

func (*PlayPingRequest) ID() int32 { return 0x21 }
func (p *PlayPingRequest) Encode(buf *codec.ByteBuffer) { buf.WriteU64(p.Payload) }
func (p *PlayPingRequest) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadU64()
	p.Payload = v
	return err
}

type PingResponse struct {
	Payload uint64
}

func (*PingResponse) ID() int32 { return 0x36 }
func (p *PingResponse) Encode(buf *codec.ByteBuffer) { buf.WriteU64(p.Payload) }
func (p *PingResponse) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadU64()
	p.Payload = v
	return err
}

// PlayPong (C2S 0x27) answers the server's periodic PlayPing keep-alive;
// a mismatched id gets the player kicked. A pong that never arrives is
// not detected.
type PlayPong struct {
	ID_ int32
}

func (*PlayPong) ID() int32 { return 0x27 }
func (p *PlayPong) Encode(buf *codec.ByteBuffer) { buf.WriteI32(p.ID_) }
func (p *PlayPong) Decode(buf *codec.ByteBuffer) error {
	v, err := buf.ReadI32()
	p.ID_ = v
	return err
}

// PlayDisconnect (S2C 0x1D) carries the kick reason as a network-mode NBT
// text component.
type PlayDisconnect struct {
	ReasonNBT []byte
}

func (*PlayDisconnect) ID() int32 { return 0x1D }
func (p *PlayDisconnect) Encode(buf *codec.ByteBuffer) { buf.WriteBytes(p.ReasonNBT) }
func (p *PlayDisconnect) Decode(buf *codec.ByteBuffer) error {
	p.ReasonNBT = buf.ReadInferredByteArray()
	return nil
}

// UnloadChunk (S2C 0x21) tells the client to drop a chunk column that has
// left its view distance.
type UnloadChunk struct {
	ChunkX, ChunkZ int32
}

func (*UnloadChunk) ID() int32 { return 0x21 }
func (p *UnloadChunk) Encode(buf *codec.ByteBuffer) {
	buf.WriteI32(p.ChunkZ)
	buf.WriteI32(p.ChunkX)
}
func (p *UnloadChunk) Decode(buf *codec.ByteBuffer) error {
	var err error
	if p.ChunkZ, err = buf.ReadI32(); err != nil {
		return err
	}
	if p.ChunkX, err = buf.ReadI32(); err != nil {
		return err
	}
	return nil
}

// GameEvent (S2C 0x22) signals miscellaneous world/client state changes;
// event 13 ("wait for level chunks") is what this server sends right
// after the initial chunk burst to tell the client it's safe to stop
// showing the loading screen.
type GameEvent struct {
	Event uint8
	Value float32
}

func (*GameEvent) ID() int32 { return 0x22 }
func (p *GameEvent) Encode(buf *codec.ByteBuffer) {
	buf.WriteU8(p.Event)
	buf.WriteF32(p.Value)
}
func (p *GameEvent) Decode(buf *codec.ByteBuffer) error {
	var err error
	if p.Event, err = buf.ReadU8(); err != nil {
		return err
	}
	if p.Value, err = buf.ReadF32(); err != nil {
		return err
	}
	return nil
}

// ChunkDataAndUpdateLight (S2C 0x27) ships one chunk column: a network-
// mode NBT heightmap compound followed by the raw section data and the
// (always-empty, since this server doesn't simulate lighting) light
// arrays and masks.
type ChunkDataAndUpdateLight struct {
	X, Z                int32
	HeightmapsNBT       []byte
	Data                []byte
	BlockEntities       []byte
	SkyLightMask        []byte
	BlockLightMask      []byte
	EmptySkyLightMask   []byte
	EmptyBlockLightMask []byte
	SkyLightArray       []byte
	BlockLightArray     []byte
}

func (*ChunkDataAndUpdateLight) ID() int32 { return 0x27 }

func (p *ChunkDataAndUpdateLight) Encode(buf *codec.ByteBuffer) {
	buf.WriteI32(p.X)
	buf.WriteI32(p.Z)
	buf.WriteBytes(p.HeightmapsNBT)
	buf.WriteByteArray(p.Data)
	// block entity count, always 0 for flat-generated chunks.
	buf.WriteVarInt(0)
	buf.WriteByteArray(p.SkyLightMask)
	buf.WriteByteArray(p.BlockLightMask)
	buf.WriteByteArray(p.EmptySkyLightMask)
	buf.WriteByteArray(p.EmptyBlockLightMask)
	buf.WriteVarInt(int32(len(p.SkyLightArray)))
	buf.WriteBytes(p.SkyLightArray)
	buf.WriteVarInt(int32(len(p.BlockLightArray)))
	buf.WriteBytes(p.BlockLightArray)
}

func (p *ChunkDataAndUpdateLight) Decode(*codec.ByteBuffer) error {
	// This server never receives a ChunkDataAndUpdateLight packet; a
	// client never sends one.
	return nil
}

// DeathLocation names the dimension and block a player died in, used by
// PlayLogin to let a respawning client draw a compass toward its bed.
// This server never sets one (fresh joins never have a death to recall).
type DeathLocation struct {
	DimensionName codec.Identifier
	Position      codec.Position
}

// PlayLogin (S2C 0x2B) is the first packet of Play, establishing the
// player's entity id, game mode, and the single fixed "overworld"
// dimension this server simulates.
type PlayLogin struct {
	EntityID            int32
	IsHardcore          bool
	DimensionNames       []codec.Identifier
	MaxPlayers           int32
	ViewDistance         int32
	SimulationDistance   int32
	ReducedDebugInfo     bool
	EnableRespawns       bool
	LimitedCrafting      bool
	DimensionType        int32
	DimensionName        codec.Identifier
	Seed                 int64
	GameMode             uint8
	PreviousGameMode     int8
	IsDebug              bool
	IsFlat               bool
	DeathLocation        *DeathLocation
	PortalCooldown       int32
	EnforcesSecureChat   bool
}

func (*PlayLogin) ID() int32 { return 0x2B }

func (p *PlayLogin) Encode(buf *codec.ByteBuffer) {
	buf.WriteI32(p.EntityID)
	buf.WriteBool(p.IsHardcore)
	buf.WriteVarInt(int32(len(p.DimensionNames)))
	for _, d := range p.DimensionNames {
		buf.WriteIdentifier(d)
	}
	buf.WriteVarInt(p.MaxPlayers)
	buf.WriteVarInt(p.ViewDistance)
	buf.WriteVarInt(p.SimulationDistance)
	buf.WriteBool(p.ReducedDebugInfo)
	buf.WriteBool(p.EnableRespawns)
	buf.WriteBool(p.LimitedCrafting)
	buf.WriteVarInt(p.DimensionType)
	buf.WriteIdentifier(p.DimensionName)
	buf.WriteI64(p.Seed)
	buf.WriteU8(p.GameMode)
	buf.WriteI8(p.PreviousGameMode)
	buf.WriteBool(p.IsDebug)
	buf.WriteBool(p.IsFlat)
	buf.WriteBool(p.DeathLocation != nil)
	if p.DeathLocation != nil {
		buf.WriteIdentifier(p.DeathLocation.DimensionName)
		buf.WritePosition(p.DeathLocation.Position)
	}
	buf.WriteVarInt(p.PortalCooldown)
	buf.WriteBool(p.EnforcesSecureChat)
}

func (p *PlayLogin) Decode(*codec.ByteBuffer) error { return nil }

// PlayPing (S2C 0x35) is this server's periodic keep-alive probe, sent
// every 5 seconds with a random id; only the id of a PlayPong that does
// come back is checked.
type PlayPing struct {
	ID_ int32
}

func (*PlayPing) ID() int32 { return 0x35 }
func (p *PlayPing) Encode(buf *codec.ByteBuffer) { buf.WriteI32(p.ID_) }
func (p *PlayPing) Decode(*codec.ByteBuffer) error { return nil }

// PlayerAbilities (S2C 0x38) communicates flight/invulnerability/creative
// flags to the client. DefaultPlayerAbilities matches the reference
// server's always-flying-capable default (invulnerable|flying|allow
// flying|creative instabreak).
type PlayerAbilities struct {
	Abilities    uint8
	FlyingSpeed  float32
	FOVModifier  float32
}

func DefaultPlayerAbilities() PlayerAbilities {
	return PlayerAbilities{
		Abilities:   0x01 | 0x02 | 0x04 | 0x08,
		FlyingSpeed: 0.05,
		FOVModifier: 0.1,
	}
}

func (*PlayerAbilities) ID() int32 { return 0x38 }
func (p *PlayerAbilities) Encode(buf *codec.ByteBuffer) {
	buf.WriteU8(p.Abilities)
	buf.WriteF32(p.FlyingSpeed)
	buf.WriteF32(p.FOVModifier)
}
func (p *PlayerAbilities) Decode(*codec.ByteBuffer) error { return nil }

// PlayerInfoEntry is one player's entry within a PlayerInfoUpdate's
// add-player action.
type PlayerInfoEntry struct {
	Name              string
	NumberOfProperties int32
}

// PlayerInfoUpdate (S2C 0x3E) adds or updates tab-list entries. Only the
// add-player action (bit 0x01) is modelled; this server does not send the
// packet.
type PlayerInfoUpdate struct {
	Actions uint8
	Players []PlayerInfoEntry
}

func (*PlayerInfoUpdate) ID() int32 { return 0x3E }
func (p *PlayerInfoUpdate) Encode(buf *codec.ByteBuffer) {
	buf.WriteU8(p.Actions)
	buf.WriteVarInt(int32(len(p.Players)))
	for _, pl := range p.Players {
		buf.WriteString(pl.Name)
		buf.WriteVarInt(pl.NumberOfProperties)
	}
}
func (p *PlayerInfoUpdate) Decode(*codec.ByteBuffer) error { return nil }

// SynchronizePlayerPosition (S2C 0x40) forces the client to an absolute
// position; the client answers with ConfirmTeleportation carrying the
// same TeleportID. Movement packets that arrive while a teleport is still
// unconfirmed are handled like any other.
type SynchronizePlayerPosition struct {
	X, Y, Z     float64
	Yaw, Pitch  float32
	Flags       uint8
	TeleportID  int32
}

func (*SynchronizePlayerPosition) ID() int32 { return 0x40 }
func (p *SynchronizePlayerPosition) Encode(buf *codec.ByteBuffer) {
	buf.WriteF64(p.X)
	buf.WriteF64(p.Y)
	buf.WriteF64(p.Z)
	buf.WriteF32(p.Yaw)
	buf.WriteF32(p.Pitch)
	buf.WriteU8(p.Flags)
	buf.WriteVarInt(p.TeleportID)
}
func (p *SynchronizePlayerPosition) Decode(*codec.ByteBuffer) error { return nil }

// SetCenterChunk (S2C 0x54) tells the client which chunk column the view
// distance square is currently centered on, so it knows which already-
// sent chunks are about to start aging out.
type SetCenterChunk struct {
	X, Z int32
}

func (*SetCenterChunk) ID() int32 { return 0x54 }
func (p *SetCenterChunk) Encode(buf *codec.ByteBuffer) {
	buf.WriteVarInt(p.X)
	buf.WriteVarInt(p.Z)
}
func (p *SetCenterChunk) Decode(buf *codec.ByteBuffer) error {
	var err error
	if p.X, err = buf.ReadVarInt(); err != nil {
		return err
	}
	if p.Z, err = buf.ReadVarInt(); err != nil {
		return err
	}
	return nil
}

// PlayPluginMessage (C2S 0x12) carries an addon payload on a namespaced
// channel during Play, the same shape as its Configuration-state
// counterpart. Channels other than "minecraft:brand" are forwarded to
// the plugin bus rather than interpreted here.
type PlayPluginMessage struct {
	Channel codec.Identifier
	Data    []byte
}

func (*PlayPluginMessage) ID() int32 { return 0x12 }

func (p *PlayPluginMessage) Encode(buf *codec.ByteBuffer) {
	buf.WriteIdentifier(p.Channel)
	buf.WriteBytes(p.Data)
}

func (p *PlayPluginMessage) Decode(buf *codec.ByteBuffer) error {
	id, err := buf.ReadIdentifier()
	if err != nil {
		return err
	}
	p.Channel = id
	p.Data = buf.ReadInferredByteArray()
	return nil
}

var playC2STable = Table{
	0x00: func() Packet { return &ConfirmTeleportation{} },
	0x12: func() Packet { return &PlayPluginMessage{} },
	0x1A: func() Packet { return &SetPlayerPosition{} },
	0x21: func() Packet { return &PlayPingRequest{} },
	0x27: func() Packet { return &PlayPong{} },
}
