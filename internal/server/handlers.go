package server

import (
	"context"
	"net"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"orewire-server/internal/codec"
	"orewire-server/internal/conn"
	"orewire-server/internal/registry"
	"orewire-server/internal/sim"
	"orewire-server/internal/world"
)

var overworld = codec.ParseIdentifier("minecraft:overworld")

// handleConnection owns one TCP connection end to end: Handshake,
// Status or Login, Configuration, and — once acknowledged — Play,
// mirroring the teacher's one-goroutine-per-connection shape from
// handleConnection in main.go.
func (s *Server) handleConnection(ctx context.Context, raw net.Conn) {
	entry := s.log.WithField("remote", raw.RemoteAddr().String())
	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("recovered from panic in connection handler")
		}
	}()
	defer raw.Close()

	c := conn.New(raw, s.dispatcher, entry)
	defer c.Close()

	var (
		username     string
		uuid         [16]byte
		locale       string
		mainHand     sim.MainHand
		viewDistance int8
	)

	for {
		_, pkt, err := c.ReadPacket()
		if err != nil {
			entry.WithError(err).Debug("connection closed")
			return
		}
		packetsReceivedTotal.WithLabelValues(c.State().String()).Inc()

		switch c.State() {
		case registry.StateHandshake:
			hs, ok := pkt.(*registry.Handshake)
			if !ok {
				continue
			}
			switch hs.NextState {
			case registry.NextStateStatus:
				c.SetState(registry.StateStatus)
			case registry.NextStateLogin, registry.NextStateTransfer:
				c.SetState(registry.StateLogin)
			default:
				entry.WithField("next_state", hs.NextState).Warn("unknown handshake next state")
				return
			}

		case registry.StateStatus:
			if !s.handleStatusPacket(c, pkt, entry) {
				return
			}

		case registry.StateLogin:
			if !s.handleLoginPacket(c, pkt, &username, &uuid, entry) {
				return
			}

		case registry.StateConfiguration:
			done, sess := s.handleConfigurationPacket(c, pkt, username, uuid, &locale, &mainHand, &viewDistance, entry)
			if sess != nil {
				s.runPlay(ctx, sess)
				return
			}
			if !done {
				return
			}
		}
	}
}

func (s *Server) handleStatusPacket(c *conn.Connection, pkt registry.Packet, entry *logrus.Entry) bool {
	switch p := pkt.(type) {
	case *registry.StatusRequest:
		if err := c.WritePacket(&registry.StatusResponse{JSON: s.statusJSON()}); err != nil {
			return false
		}
		packetsSentTotal.WithLabelValues("status").Inc()
		return true
	case *registry.StatusPingRequest:
		_ = c.WritePacket(&registry.StatusPingResponse{Payload: p.Payload})
		packetsSentTotal.WithLabelValues("status").Inc()
		return false // vanilla clients close the socket right after the pong
	default:
		return true
	}
}

func (s *Server) handleLoginPacket(c *conn.Connection, pkt registry.Packet, username *string, uuid *[16]byte, entry *logrus.Entry) bool {
	switch p := pkt.(type) {
	case *registry.LoginStart:
		*username = p.Name
		*uuid = p.UUID
		entry.WithField("username", p.Name).Info("player logging in")

		threshold := int32(s.config().CompressionThreshold)
		if err := c.WritePacket(&registry.SetCompression{Threshold: threshold}); err != nil {
			return false
		}
		c.SetCompression(int(threshold))

		if err := c.WritePacket(&registry.LoginSuccess{UUID: *uuid, Username: *username}); err != nil {
			return false
		}
		packetsSentTotal.WithLabelValues("login").Inc()
		return true

	case *registry.LoginAcknowledged:
		c.SetState(registry.StateConfiguration)
		for _, reg := range s.registryPackets {
			if err := c.WritePacket(reg); err != nil {
				return false
			}
		}
		packetsSentTotal.WithLabelValues("login").Add(float64(len(s.registryPackets)))
		return true

	default:
		return true
	}
}

// handleConfigurationPacket processes one Configuration-state packet. On
// AcknowledgeFinishConfiguration it builds and registers the player's
// Play session and returns it so the caller can hand the connection off
// to runPlay; done reports whether the connection should stay open for
// more Configuration packets otherwise.
func (s *Server) handleConfigurationPacket(
	c *conn.Connection, pkt registry.Packet,
	username string, uuid [16]byte,
	locale *string, mainHand *sim.MainHand, viewDistance *int8,
	entry *logrus.Entry,
) (done bool, sess *playerSession) {
	switch p := pkt.(type) {
	case *registry.ClientInformation:
		*locale = p.Locale
		*viewDistance = p.ViewDistance
		*mainHand = sim.MainHand(p.MainHand)
		if err := c.WritePacket(&registry.FinishConfiguration{}); err != nil {
			return false, nil
		}
		packetsSentTotal.WithLabelValues("configuration").Inc()
		return true, nil

	case *registry.ConfigurationPluginMessage:
		if p.Channel.Key == "brand" {
			entry.WithField("brand", string(p.Data)).Debug("client brand")
		}
		return true, nil

	case *registry.AcknowledgeFinishConfiguration:
		c.SetState(registry.StatePlay)
		built := s.beginPlay(c, username, uuid, *locale, *mainHand, *viewDistance, entry)
		return true, built

	default:
		return true, nil
	}
}

// beginPlay sends the initial Play-state packet burst (PlayLogin,
// abilities, the surrounding chunk grid, spawn teleport, and the
// wait-for-chunks game event) and registers the new player session.
func (s *Server) beginPlay(c *conn.Connection, username string, uuid [16]byte, locale string, mainHand sim.MainHand, viewDistance int8, entry *logrus.Entry) *playerSession {
	player := sim.NewPlayer(username, uuid, locale, mainHand)
	player.ViewDistance = viewDistance
	actual := player.ActualViewDistance(int8(s.config().ViewDistance))

	entityID := s.nextEntityID()

	sess := &playerSession{
		sessionID: xid.New(),
		entityID:  entityID,
		conn:      c,
		player:    player,
	}

	sess.pluginBus = s.openPluginBus(entry)

	_ = c.WritePacket(&registry.PlayLogin{
		EntityID:           entityID,
		IsHardcore:         false,
		DimensionNames:     []codec.Identifier{overworld},
		MaxPlayers:         int32(s.config().MaxPlayers),
		ViewDistance:       int32(actual),
		SimulationDistance: int32(actual),
		ReducedDebugInfo:   false,
		EnableRespawns:     true,
		LimitedCrafting:    false,
		DimensionType:      0,
		DimensionName:      overworld,
		Seed:               0,
		GameMode:           uint8(sim.GameModeCreative),
		PreviousGameMode:   int8(sim.GameModeUndefined),
		IsDebug:            false,
		IsFlat:             true,
		PortalCooldown:     0,
		EnforcesSecureChat: false,
	})
	player.GameMode = sim.GameModeCreative
	abilities := registry.DefaultPlayerAbilities()
	_ = c.WritePacket(&abilities)

	rules := s.gameRules.GetOrLoad("overworld")
	if !rules.DoImmediateRespawn {
		entry.Debug("world uses vanilla respawn-screen behavior")
	}

	center := world.ChunkOf(0, 0)
	sess.center = center
	s.sendChunkGrid(sess, center, 3)

	teleportID := player.Teleport(sim.NewLocation(0, 0, 0))
	_ = c.WritePacket(&registry.SynchronizePlayerPosition{
		X: 0, Y: 0, Z: 0, Yaw: 0, Pitch: 0, Flags: 0, TeleportID: teleportID,
	})
	player.TeleportRequests[len(player.TeleportRequests)-1].Sent = true

	_ = c.WritePacket(&registry.GameEvent{Event: 13, Value: 0})

	s.mu.Lock()
	s.players[sess.sessionID] = sess
	playersOnline.Set(float64(len(s.players)))
	s.mu.Unlock()

	return sess
}

// sendChunkGrid sends the (2*radius)x(2*radius) column square of flat
// chunks centered on center, marking each as loaded on the session.
func (s *Server) sendChunkGrid(sess *playerSession, center world.Position, radius int32) {
	sess.player.LoadedChunks = make(map[world.Position]bool)
	for dx := -radius; dx < radius; dx++ {
		for dz := -radius; dz < radius; dz++ {
			pos := world.Position{X: center.X + dx, Z: center.Z + dz}
			s.sendChunkColumn(sess, pos)
			sess.player.LoadedChunks[pos] = true
		}
	}
}

func (s *Server) sendChunkColumn(sess *playerSession, pos world.Position) {
	_ = sess.conn.WritePacket(&registry.ChunkDataAndUpdateLight{
		X:             pos.X,
		Z:             pos.Z,
		HeightmapsNBT: s.flatChunk.HeightmapsNetworkNBT(),
		Data:          s.flatChunk.SectionData(),
	})
	packetsSentTotal.WithLabelValues("play").Inc()
}

// runPlay blocks reading Play-state packets off sess's connection until
// it disconnects or ctx is cancelled, handing each decoded packet to
// handlePlayPacket.
func (s *Server) runPlay(ctx context.Context, sess *playerSession) {
	defer s.removeSession(sess)
	defer sess.conn.Close()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, pkt, err := sess.conn.ReadPacket()
		if err != nil {
			return
		}
		packetsReceivedTotal.WithLabelValues("play").Inc()
		s.handlePlayPacket(sess, pkt)
	}
}

func (s *Server) handlePlayPacket(sess *playerSession, pkt registry.Packet) {
	switch p := pkt.(type) {
	case *registry.ConfirmTeleportation:
		sess.mu.Lock()
		sess.player.TeleportAcknowledge(p.TeleportID)
		sess.mu.Unlock()

	case *registry.SetPlayerPosition:
		// SetPlayerPosition carries no yaw/pitch fields of its own; per
		// spec, the move must preserve whatever look direction the player
		// already has rather than snapping it to zero.
		sess.mu.Lock()
		loc := sim.Location{X: p.X, Y: p.Y, Z: p.Z, Yaw: sess.player.Location.Yaw, Pitch: sess.player.Location.Pitch}
		sess.player.MoveAbsolute(loc)
		current := sess.player.Location
		sess.mu.Unlock()
		s.updateChunkView(sess, current)

	case *registry.PlayPong:
		sess.mu.Lock()
		mismatch := p.ID_ != sess.player.LastKeepAliveID
		sess.mu.Unlock()
		if mismatch {
			s.kick(sess, "Ping response id was not the same as the sent request's id!")
		}

	case *registry.PlayPingRequest:
		_ = sess.conn.WritePacket(&registry.PingResponse{Payload: p.Payload})
		packetsSentTotal.WithLabelValues("play").Inc()

	case *registry.PlayPluginMessage:
		if p.Channel.Key == "brand" {
			return
		}
		sess.mu.Lock()
		bus := sess.pluginBus
		sess.mu.Unlock()
		if bus == nil {
			return
		}
		if err := bus.Forward(p.Channel, p.Data); err != nil {
			s.log.WithField("channel", p.Channel).WithError(err).Debug("plugin bus forward failed")
		}
	}
}

// updateChunkView recomputes the view square around current and sends
// any newly entered or left chunk columns, only when the player has
// actually crossed into a different center chunk.
func (s *Server) updateChunkView(sess *playerSession, current sim.Location) {
	sess.mu.Lock()
	center := world.ChunkOf(int32(current.X), int32(current.Z))
	same := center == sess.center
	sess.mu.Unlock()
	if same {
		return
	}

	sess.mu.Lock()
	viewDistance := sess.player.ActualViewDistance(int8(s.config().ViewDistance))
	loaded := sess.player.LoadedChunks
	delta := sim.ViewSquareDelta(center, viewDistance, loaded)
	sim.ApplyDelta(loaded, delta)
	sess.center = center
	sess.mu.Unlock()

	_ = sess.conn.WritePacket(&registry.SetCenterChunk{X: center.X, Z: center.Z})
	packetsSentTotal.WithLabelValues("play").Inc()

	for _, pos := range delta.ToUnload {
		_ = sess.conn.WritePacket(&registry.UnloadChunk{ChunkX: pos.X, ChunkZ: pos.Z})
		packetsSentTotal.WithLabelValues("play").Inc()
	}
	for _, pos := range delta.ToLoad {
		s.sendChunkColumn(sess, pos)
	}
}
