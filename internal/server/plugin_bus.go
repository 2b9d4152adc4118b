package server

import (
	"fmt"
	"io"
	"net"

	"github.com/hashicorp/yamux"
	"github.com/sirupsen/logrus"

	"orewire-server/internal/codec"
)

// PluginBus multiplexes plugin-channel traffic (Minecraft's custom
// payload packets) to an external plugin process over a single TCP
// connection, one yamux stream per logical channel. This generalizes
// the teacher's single-purpose encrypted tunnel into a legitimate
// plugin-messaging side channel: each stream carries exactly one
// channel's framed payloads rather than arbitrary proxied bytes.
type PluginBus struct {
	session *yamux.Session
	streams map[codec.Identifier]net.Conn
}

// DialPluginBus connects to a plugin host listening at addr and opens a
// yamux client session over it.
func DialPluginBus(addr string) (*PluginBus, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial plugin host %s: %w", addr, err)
	}
	session, err := yamux.Client(conn, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open yamux client session: %w", err)
	}
	return &PluginBus{session: session, streams: make(map[codec.Identifier]net.Conn)}, nil
}

// ListenPluginBus accepts a single plugin host connection on addr and
// runs a yamux server session over it, returning once a plugin has
// connected.
func ListenPluginBus(addr string) (*PluginBus, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen for plugin host on %s: %w", addr, err)
	}
	defer listener.Close()

	conn, err := listener.Accept()
	if err != nil {
		return nil, fmt.Errorf("accept plugin host: %w", err)
	}
	session, err := yamux.Server(conn, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open yamux server session: %w", err)
	}
	return &PluginBus{session: session, streams: make(map[codec.Identifier]net.Conn)}, nil
}

// streamFor returns the open stream for channel, opening a fresh one on
// first use.
func (b *PluginBus) streamFor(channel codec.Identifier) (net.Conn, error) {
	if s, ok := b.streams[channel]; ok {
		return s, nil
	}
	s, err := b.session.Open()
	if err != nil {
		return nil, fmt.Errorf("open stream for channel %s: %w", channel, err)
	}
	b.streams[channel] = s
	return s, nil
}

// Forward sends a plugin message's payload down the stream dedicated to
// channel, length-prefixing it with a VarInt so the plugin host can
// frame multiple messages sharing one stream.
func (b *PluginBus) Forward(channel codec.Identifier, payload []byte) error {
	stream, err := b.streamFor(channel)
	if err != nil {
		return err
	}
	buf := codec.NewByteBuffer()
	buf.WriteVarInt(int32(len(payload)))
	buf.WriteBytes(payload)
	if _, err := stream.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write to plugin stream %s: %w", channel, err)
	}
	return nil
}

// Close tears down every open stream and the underlying session.
func (b *PluginBus) Close() error {
	for channel, s := range b.streams {
		if err := s.Close(); err != nil {
			logrus.WithField("channel", channel).WithError(err).Warn("error closing plugin stream")
		}
	}
	return b.session.Close()
}

// openPluginBus dials the server's configured plugin host, if any, and
// falls back to an in-process loopback bus otherwise.
func (s *Server) openPluginBus(entry *logrus.Entry) *PluginBus {
	if s.config().PluginHostAddr != "" {
		bus, err := DialPluginBus(s.config().PluginHostAddr)
		if err != nil {
			entry.WithError(err).Warn("could not dial plugin host, falling back to loopback bus")
		} else {
			return bus
		}
	}
	bus, err := newLoopbackPluginBus()
	if err != nil {
		entry.WithError(err).Warn("could not open loopback plugin bus for session")
		return nil
	}
	return bus
}

// newLoopbackPluginBus opens a yamux session over an in-process
// net.Pipe rather than a real TCP socket: one Play-state connection gets
// one session, and the server side just drains whatever streams get
// opened on it. This gives plugin-channel forwarding somewhere real to
// go (and something for a test to assert on) without this server
// needing an actual external plugin host to talk to yet.
func newLoopbackPluginBus() (*PluginBus, error) {
	serverSide, clientSide := net.Pipe()

	session, err := yamux.Server(serverSide, nil)
	if err != nil {
		serverSide.Close()
		clientSide.Close()
		return nil, fmt.Errorf("open loopback yamux server session: %w", err)
	}
	go drainPluginStreams(session)

	client, err := yamux.Client(clientSide, nil)
	if err != nil {
		session.Close()
		clientSide.Close()
		return nil, fmt.Errorf("open loopback yamux client session: %w", err)
	}

	return &PluginBus{session: client, streams: make(map[codec.Identifier]net.Conn)}, nil
}

// drainPluginStreams accepts every stream a loopback bus's peer opens
// and discards its bytes, standing in for the plugin-side handler a real
// external host would run.
func drainPluginStreams(session *yamux.Session) {
	for {
		stream, err := session.Accept()
		if err != nil {
			return
		}
		go io.Copy(io.Discard, stream)
	}
}
