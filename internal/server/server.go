// Package server ties connection handling, game simulation, and the
// periodic tick loop together into a running Minecraft server instance.
package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"orewire-server/internal/conn"
	"orewire-server/internal/config"
	"orewire-server/internal/registry"
	"orewire-server/internal/sim"
	"orewire-server/internal/text"
	"orewire-server/internal/world"
)

// TickInterval matches the reference server's 20Hz simulation rate.
const TickInterval = 50 * time.Millisecond

// overloadedTickThreshold is how many consecutive over-budget ticks the
// server tolerates before logging a warning, mirroring
// Application::run()'s over_time_ticks check.
const overloadedTickThreshold = 10

// playerSession is one connected Play-state player: its wire connection,
// its simulation state, and the view-square center its loaded chunks are
// tracked relative to. mu guards Player and center since both the
// connection's own read goroutine and the central tick loop touch them.
type playerSession struct {
	sessionID xid.ID
	entityID  int32

	conn *conn.Connection

	mu     sync.Mutex
	player *sim.Player
	center world.Position

	pluginBus *PluginBus
}

// Server owns the listener, the dispatcher every connection decodes
// against, and the table of players currently in Play.
type Server struct {
	cfg        atomic.Pointer[config.ServerConfig]
	log        *logrus.Entry
	dispatcher *registry.Dispatcher
	gameRules  *config.GameRules

	listener net.Listener

	mu          sync.Mutex
	players     map[xid.ID]*playerSession
	entityCount int32

	flatChunk      *world.Chunk
	registryPackets []registry.Packet
}

// New builds a Server from cfg, pre-rendering the vanilla registry
// packets once up front since they're identical for every joining
// player. It does not start listening yet.
func New(cfg *config.ServerConfig, log *logrus.Entry) (*Server, error) {
	regs, err := registry.BuildRegistryDataPackets()
	if err != nil {
		return nil, fmt.Errorf("build registry packets: %w", err)
	}
	packets := make([]registry.Packet, len(regs))
	for i, r := range regs {
		packets[i] = r
	}

	s := &Server{
		log:             log,
		dispatcher:      registry.NewDispatcher(),
		gameRules:       config.NewGameRules(),
		players:         make(map[xid.ID]*playerSession),
		flatChunk:       world.FlatGeneration(),
		registryPackets: packets,
	}
	s.cfg.Store(cfg)
	return s, nil
}

// config returns the server's current configuration. Safe to call
// concurrently with UpdateConfig, including from the per-connection
// goroutines and the tick loop.
func (s *Server) config() *config.ServerConfig {
	return s.cfg.Load()
}

// UpdateConfig atomically swaps in a freshly reloaded configuration
// (see config.Watch), taking effect for subsequent reads — new
// connections and the tick loop's own config lookups — without a data
// race against whatever goroutine happens to be reading the old one.
func (s *Server) UpdateConfig(cfg *config.ServerConfig) {
	s.cfg.Store(cfg)
}

// Run listens on cfg's address and blocks, accepting connections and
// running the tick loop, until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config().IP, s.config().Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener
	s.log.WithField("addr", addr).Info("listening")

	go s.acceptLoop(ctx)
	s.tickLoop(ctx)

	return s.listener.Close()
}

// acceptLoop mirrors the teacher's accept-loop-plus-goroutine-per-
// connection shape: every accepted socket gets its own goroutine that
// owns that connection's lifetime end to end.
func (s *Server) acceptLoop(ctx context.Context) {
	for {
		raw, err := s.listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return
			default:
				s.log.WithError(err).Warn("accept error")
				continue
			}
		}
		connectionsTotal.Inc()
		go s.handleConnection(ctx, raw)
	}
}

// tickLoop runs the server's 20Hz heartbeat: keep-alive dispatch and
// queued teleport flushing for every Play-state player, timed and
// overload-logged the way Application::run() times its own tick.
func (s *Server) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	overloadedStreak := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			s.tick()
			elapsed := time.Since(start)
			tickDurationSeconds.Observe(elapsed.Seconds())

			if elapsed > TickInterval {
				overloadedStreak++
				if overloadedStreak > overloadedTickThreshold {
					tickOverloadedTotal.Inc()
					s.log.WithField("elapsed", elapsed).Warn("server overloaded, can't keep up with tick rate")
				}
			} else {
				overloadedStreak = 0
			}
		}
	}
}

// tick walks every Play-state player once: sending due keep-alives and
// flushing any teleport request that hasn't gone out over the wire yet.
func (s *Server) tick() {
	s.mu.Lock()
	sessions := make([]*playerSession, 0, len(s.players))
	for _, sess := range s.players {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		s.tickKeepAlive(sess)
		s.tickTeleports(sess)
	}
}

func (s *Server) tickKeepAlive(sess *playerSession) {
	sess.mu.Lock()
	due := time.Since(sess.player.LastKeepAlive) >= sim.KeepAliveInterval
	overdue := time.Since(sess.player.LastKeepAlive) >= 2*sim.KeepAliveInterval
	sess.mu.Unlock()

	if overdue {
		s.kick(sess, "Timed out (keep-alive not answered)")
		return
	}
	if !due {
		return
	}

	newID := rand.Int32()
	sess.mu.Lock()
	sess.player.LastKeepAliveID = newID
	sess.player.LastKeepAlive = time.Now()
	sess.mu.Unlock()

	if err := sess.conn.WritePacket(&registry.PlayPing{ID_: newID}); err != nil {
		s.log.WithError(err).Debug("keep-alive send failed")
		return
	}
	packetsSentTotal.WithLabelValues("play").Inc()
}

func (s *Server) tickTeleports(sess *playerSession) {
	sess.mu.Lock()
	var pending []sim.TeleportRequest
	for i := range sess.player.TeleportRequests {
		if !sess.player.TeleportRequests[i].Sent {
			sess.player.TeleportRequests[i].Sent = true
			pending = append(pending, sess.player.TeleportRequests[i])
		}
	}
	sess.mu.Unlock()

	for _, req := range pending {
		pkt := &registry.SynchronizePlayerPosition{
			X: req.Target.X, Y: req.Target.Y, Z: req.Target.Z,
			Yaw: req.Target.Yaw, Pitch: req.Target.Pitch,
			Flags:      0,
			TeleportID: req.ID,
		}
		if err := sess.conn.WritePacket(pkt); err != nil {
			s.log.WithError(err).Debug("teleport send failed")
			continue
		}
		packetsSentTotal.WithLabelValues("play").Inc()
	}
}

// kick disconnects a Play-state player with reason, tearing down its
// connection and removing it from the player table.
func (s *Server) kick(sess *playerSession, reason string) {
	_ = sess.conn.WritePacket(&registry.PlayDisconnect{ReasonNBT: plainReason(reason)})
	sess.conn.Close()
	s.removeSession(sess)
}

func (s *Server) removeSession(sess *playerSession) {
	if sess.pluginBus != nil {
		_ = sess.pluginBus.Close()
	}
	s.mu.Lock()
	delete(s.players, sess.sessionID)
	playersOnline.Set(float64(len(s.players)))
	s.mu.Unlock()
}

func (s *Server) nextEntityID() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entityCount++
	return s.entityCount
}

// plainReason renders a kick message as the network-mode NBT text
// component a disconnect packet's reason field expects.
func plainReason(msg string) []byte {
	return text.Colored(msg, text.ColorRed)
}

// statusJSON builds the server-list-ping response body, reflecting the
// configured MOTD and max player count with a live online count.
func (s *Server) statusJSON() string {
	s.mu.Lock()
	online := len(s.players)
	s.mu.Unlock()

	return fmt.Sprintf(
		`{"version":{"name":%q,"protocol":%d},"players":{"max":%d,"online":%d,"sample":[]},"description":{"text":%q}}`,
		registry.VersionName, registry.ProtocolVersion, s.config().MaxPlayers, online, s.config().MOTD,
	)
}
