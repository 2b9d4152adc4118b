// Package conn wires a single TCP connection's byte stream to the packet
// framing and registry dispatch layers, tracking the protocol state
// machine and per-connection compression bookkeeping.
package conn

import (
	"bufio"
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"orewire-server/internal/codec"
	"orewire-server/internal/framing"
	"orewire-server/internal/registry"
)

// readBufferSize is how much we read from the socket per Read call;
// Inbox buffers whatever doesn't make a full frame yet.
const readBufferSize = 4096

// Connection tracks one client's wire-level state: which protocol phase
// it's in, the negotiated compression threshold, and the write side's
// framing. It does not know about game simulation state; that lives in
// sim.Player, referenced by the server's connection table.
type Connection struct {
	net.Conn

	log *logrus.Entry

	state       registry.State
	dispatcher  *registry.Dispatcher
	inbox       *framing.Inbox
	reader      *bufio.Reader
	threshold   int

	writeMu sync.Mutex

	closeOnce sync.Once
	closed    chan struct{}
}

// New wraps conn, starting in the Handshake state with compression
// disabled.
func New(raw net.Conn, dispatcher *registry.Dispatcher, log *logrus.Entry) *Connection {
	return &Connection{
		Conn:       raw,
		log:        log,
		state:      registry.StateHandshake,
		dispatcher: dispatcher,
		inbox:      framing.NewInbox(),
		reader:     bufio.NewReaderSize(raw, readBufferSize),
		threshold:  framing.NoCompression,
		closed:     make(chan struct{}),
	}
}

// State returns the connection's current protocol phase.
func (c *Connection) State() registry.State { return c.state }

// SetState transitions the connection to a new protocol phase, e.g.
// Login -> Configuration once LoginAcknowledged arrives.
func (c *Connection) SetState(s registry.State) { c.state = s }

// SetCompression enables zlib compression for every subsequent outbound
// and inbound frame once threshold bytes, matching the SetCompression
// packet's contract. threshold must have already been sent uncompressed
// by the caller before calling this.
func (c *Connection) SetCompression(threshold int) {
	c.threshold = threshold
	c.inbox.SetThreshold(threshold)
}

// ReadPacket blocks until a full packet has arrived, decoding it via the
// dispatcher's table for the connection's current state. It returns the
// decoded packet and its id, or io.EOF-wrapping errors on disconnect.
func (c *Connection) ReadPacket() (id int32, packet registry.Packet, err error) {
	for {
		pid, payload, ok, decErr := c.inbox.Next()
		if decErr != nil {
			return 0, nil, fmt.Errorf("decode frame: %w", decErr)
		}
		if ok {
			factory, known := c.dispatcher.Lookup(c.state, pid)
			if !known {
				c.log.WithField("state", c.state).WithField("id", pid).Debug("unknown packet id, skipping")
				continue
			}
			packet = factory()
			buf := codec.WrapBytes(payload)
			if err := packet.Decode(buf); err != nil {
				return pid, nil, fmt.Errorf("decode packet 0x%02x in state %v: %w", pid, c.state, err)
			}
			return pid, packet, nil
		}

		chunk := make([]byte, readBufferSize)
		n, readErr := c.reader.Read(chunk)
		if n > 0 {
			c.inbox.Feed(chunk[:n])
		}
		if readErr != nil {
			return 0, nil, readErr
		}
	}
}

// WritePacket encodes packet and sends it as a framed, possibly
// compressed, wire packet. Safe for concurrent use; the tick loop and
// any async senders (keep-alive ticker, plugin channel) share one
// connection's write side.
func (c *Connection) WritePacket(packet registry.Packet) error {
	buf := codec.NewByteBuffer()
	packet.Encode(buf)

	// SetCompression itself must always cross the wire uncompressed: the
	// client doesn't start expecting compressed frames until after it has
	// parsed this one. Fixed by type rather than by id+state, since its id
	// (0x03) is only valid during Login anyway.
	threshold := c.threshold
	if _, ok := packet.(*registry.SetCompression); ok {
		threshold = framing.NoCompression
	}
	frame := framing.EncodeFrame(packet.ID(), buf.Bytes(), threshold)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_, err := c.Conn.Write(frame)
	return err
}

// Close closes the underlying socket exactly once, signalling Done.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.Conn.Close()
	})
	return err
}

// Done returns a channel closed once Close has run, so goroutines
// spawned per-connection (keep-alive ticker, plugin bridge) can select
// on it to exit.
func (c *Connection) Done() <-chan struct{} {
	return c.closed
}
