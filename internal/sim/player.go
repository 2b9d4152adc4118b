package sim

import (
	"math/rand/v2"
	"time"

	"orewire-server/internal/world"
)

// MovementGateThreshold is the displacement magnitude past which an
// unprompted movement update is rejected as "moved too quickly" and the
// player is teleported back instead of trusted, per move_relative's
// anti-cheat check.
const MovementGateThreshold = 0.25

// KeepAliveInterval is how often the server pings a connected player.
// The tick loop kicks a player only when no ping has gone out for two
// intervals; whether a ping was answered is not tracked.
const KeepAliveInterval = 5 * time.Second

// TeleportRequest is an outstanding SynchronizePlayerPosition the server
// is waiting on a ConfirmTeleportation for. Target is the absolute
// location the outbound packet carries (with Flags left at 0, meaning
// every axis is absolute, not relative to the client's own position);
// the same value is assigned to the tracked location once acknowledged.
// Sent tracks whether the corresponding packet has actually gone out yet.
type TeleportRequest struct {
	ID     int32
	Target Location
	Sent   bool
}

// Player is one connected player's simulation state: identity, location,
// view distance, game mode, and the teleport/keep-alive bookkeeping the
// tick loop drains each pass.
type Player struct {
	Username string
	UUID     [16]byte
	Brand    string

	ViewDistance int8
	Locale       string
	MainHand     MainHand

	GameMode GameMode

	Location Location

	TeleportRequests []TeleportRequest

	LastKeepAlive   time.Time
	LastKeepAliveID int32

	LoadedChunks map[world.Position]bool
}

// NewPlayer returns a freshly configured-in player at the origin in
// Survival, with no chunks loaded yet.
func NewPlayer(username string, uuid [16]byte, locale string, mainHand MainHand) *Player {
	return &Player{
		Username:      username,
		UUID:          uuid,
		Locale:        locale,
		MainHand:      mainHand,
		GameMode:      GameModeSurvival,
		Location:      NewLocation(0, 0, 0),
		LastKeepAlive: time.Now(),
		LoadedChunks:  make(map[world.Position]bool),
	}
}

// ActualViewDistance clamps the player's requested view distance to the
// server's configured maximum.
func (p *Player) ActualViewDistance(serverMax int8) int8 {
	if p.ViewDistance < serverMax {
		return p.ViewDistance
	}
	return serverMax
}

// Teleport queues an absolute teleport to target, returning the
// generated TeleportID so a caller that also needs to send the
// SynchronizePlayerPosition packet can embed the same id in it.
func (p *Player) Teleport(target Location) int32 {
	id := rand.Int32()
	p.TeleportRequests = append(p.TeleportRequests, TeleportRequest{ID: id, Target: target})
	return id
}

// TeleportAcknowledge resolves the outstanding, already-sent teleport
// request matching id, snapping the tracked location to its target. A
// request that hasn't been sent yet, or an id matching nothing
// outstanding (a stale or duplicate ack), is ignored.
func (p *Player) TeleportAcknowledge(id int32) bool {
	for i, req := range p.TeleportRequests {
		if req.ID == id && req.Sent {
			p.Location = req.Target
			p.TeleportRequests = append(p.TeleportRequests[:i], p.TeleportRequests[i+1:]...)
			return true
		}
	}
	return false
}

// MoveResult reports what MoveRelative decided to do with an incoming
// movement update.
type MoveResult int

const (
	MoveAccepted MoveResult = iota
	MoveRejectedTeleportedBack
)

// MoveRelative applies a relative movement, rejecting (and instead
// queuing a corrective teleport back to the pre-move location) any
// displacement at or past MovementGateThreshold unless the player's
// current game mode is exempt.
func (p *Player) MoveRelative(delta Location) MoveResult {
	if delta.Magnitude() >= MovementGateThreshold && !p.GameMode.ExemptFromMovementGate() {
		// The move was never applied, so the corrective teleport's target
		// is simply the player's own still-current location.
		p.Teleport(p.Location)
		return MoveRejectedTeleportedBack
	}
	p.Location = p.Location.Add(delta)
	return MoveAccepted
}

// MoveAbsolute applies a movement update expressed as an absolute world
// position, converting it to a relative displacement from the player's
// current location before running it through the same gate as
// MoveRelative.
func (p *Player) MoveAbsolute(newLocation Location) MoveResult {
	return p.MoveRelative(p.Location.Relative(newLocation))
}
