package server

import (
	"net"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"orewire-server/internal/conn"
	"orewire-server/internal/config"
	"orewire-server/internal/registry"
	"orewire-server/internal/sim"
	"orewire-server/internal/world"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.ServerConfig{
		IP: "127.0.0.1", Port: 0,
		MaxPlayers: 20, ViewDistance: 10,
		CompressionThreshold: 256,
		MOTD:                 "test server",
	}
	srv, err := New(cfg, logrus.NewEntry(logrus.New()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

func newTestSession(t *testing.T) (*Server, *playerSession, net.Conn) {
	t.Helper()
	srv := newTestServer(t)
	serverSide, clientSide := net.Pipe()
	t.Cleanup(func() { serverSide.Close(); clientSide.Close() })

	c := conn.New(serverSide, registry.NewDispatcher(), logrus.NewEntry(logrus.New()))
	c.SetState(registry.StatePlay)

	player := sim.NewPlayer("tester", [16]byte{1}, "en_us", sim.MainHandRight)
	player.GameMode = sim.GameModeCreative

	sess := &playerSession{
		sessionID: xid.New(),
		entityID:  1,
		conn:      c,
		player:    player,
		center:    world.ChunkOf(0, 0),
	}
	srv.mu.Lock()
	srv.players[sess.sessionID] = sess
	srv.mu.Unlock()

	return srv, sess, clientSide
}

func TestStatusJSONIncludesConfiguredMOTD(t *testing.T) {
	srv := newTestServer(t)
	got := srv.statusJSON()
	if !contains(got, "test server") {
		t.Fatalf("expected MOTD in status JSON, got %s", got)
	}
	if !contains(got, "767") {
		t.Fatalf("expected protocol version in status JSON, got %s", got)
	}
}

func TestNextEntityIDIncrementsMonotonically(t *testing.T) {
	srv := newTestServer(t)
	first := srv.nextEntityID()
	second := srv.nextEntityID()
	if second != first+1 {
		t.Fatalf("expected monotonically increasing entity ids, got %d then %d", first, second)
	}
}

func TestKickRemovesPlayerFromTable(t *testing.T) {
	srv, sess, client := newTestSession(t)
	drainInBackground(client)

	srv.kick(sess, "test kick")

	srv.mu.Lock()
	_, stillPresent := srv.players[sess.sessionID]
	srv.mu.Unlock()
	if stillPresent {
		t.Fatal("expected kicked session to be removed from the player table")
	}
}

func TestTickKeepAliveSendsPingAfterInterval(t *testing.T) {
	srv, sess, client := newTestSession(t)
	sess.player.LastKeepAlive = time.Now().Add(-sim.KeepAliveInterval - time.Second)

	done := make(chan error, 1)
	go func() {
		buf := make([]byte, 64)
		_, err := client.Read(buf)
		done <- err
	}()

	srv.tickKeepAlive(sess)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected a keep-alive ping to be written, read error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for keep-alive ping")
	}
}

func TestTickKeepAliveKicksOverduePlayer(t *testing.T) {
	srv, sess, client := newTestSession(t)
	sess.player.LastKeepAlive = time.Now().Add(-3 * sim.KeepAliveInterval)
	drainInBackground(client)

	srv.tickKeepAlive(sess)

	srv.mu.Lock()
	_, stillPresent := srv.players[sess.sessionID]
	srv.mu.Unlock()
	if stillPresent {
		t.Fatal("expected an overdue player to be kicked")
	}
}

func drainInBackground(c net.Conn) {
	go func() {
		buf := make([]byte, 4096)
		for {
			if _, err := c.Read(buf); err != nil {
				return
			}
		}
	}()
}

func contains(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
