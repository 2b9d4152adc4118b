package conn

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"orewire-server/internal/codec"
	"orewire-server/internal/framing"
	"orewire-server/internal/registry"
)

func TestReadPacketDecodesHandshake(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := New(server, registry.NewDispatcher(), logrus.NewEntry(logrus.New()))

	hs := &registry.Handshake{
		ProtocolVersion: registry.ProtocolVersion,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       registry.NextStateStatus,
	}
	buf := encodePacketForTest(hs)
	frame := framing.EncodeFrame(hs.ID(), buf, framing.NoCompression)

	go func() {
		client.Write(frame)
	}()

	done := make(chan struct{})
	var gotErr error
	var gotPacket registry.Packet
	go func() {
		_, gotPacket, gotErr = c.ReadPacket()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ReadPacket")
	}

	if gotErr != nil {
		t.Fatalf("ReadPacket: %v", gotErr)
	}
	got, ok := gotPacket.(*registry.Handshake)
	if !ok {
		t.Fatalf("expected *registry.Handshake, got %T", gotPacket)
	}
	if got.ServerAddress != "localhost" || got.ServerPort != 25565 {
		t.Fatalf("unexpected decoded handshake: %+v", got)
	}
}

func TestWritePacketRoundTripsThroughPipe(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c := New(server, registry.NewDispatcher(), logrus.NewEntry(logrus.New()))

	resp := &registry.StatusResponse{JSON: `{"version":{}}`}

	errCh := make(chan error, 1)
	go func() { errCh <- c.WritePacket(resp) }()

	clientReader := framing.NewInbox()
	readBuf := make([]byte, 512)
	var id int32
	var payload []byte
	for {
		n, err := client.Read(readBuf)
		if n > 0 {
			clientReader.Feed(readBuf[:n])
		}
		gotID, gotPayload, ok, decErr := clientReader.Next()
		if decErr != nil {
			t.Fatalf("decode: %v", decErr)
		}
		if ok {
			id, payload = gotID, gotPayload
			break
		}
		if err != nil {
			if err == io.EOF {
				t.Fatal("connection closed before a full frame arrived")
			}
			t.Fatalf("read: %v", err)
		}
	}

	if err := <-errCh; err != nil {
		t.Fatalf("WritePacket: %v", err)
	}
	if id != resp.ID() {
		t.Fatalf("expected id %d, got %d", resp.ID(), id)
	}
	if len(payload) == 0 {
		t.Fatalf("expected non-empty payload")
	}
}

func encodePacketForTest(p registry.Packet) []byte {
	buf := codec.NewByteBuffer()
	p.Encode(buf)
	return buf.Bytes()
}
