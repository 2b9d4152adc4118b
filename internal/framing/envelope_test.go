package framing

import (
	"bytes"
	"testing"
)

func TestUncompressedRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	frame := EncodeFrame(0x10, data, NoCompression)

	consumed, id, payload, err := DecodeFrame(frame, NoCompression)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if consumed != len(frame) {
		t.Fatalf("consumed %d, want %d", consumed, len(frame))
	}
	if id != 0x10 {
		t.Fatalf("id = %d", id)
	}
	if !bytes.Equal(payload, data) {
		t.Fatalf("payload = %x", payload)
	}
}

func TestUncompressedRoundTripWideID(t *testing.T) {
	// Packet ids >= 128 need a 2-byte VarInt; this is exactly the case
	// the reference server's hardcoded "length - 1" framing gets wrong.
	data := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	frame := EncodeFrame(200, data, NoCompression)

	_, id, payload, err := DecodeFrame(frame, NoCompression)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if id != 200 {
		t.Fatalf("id = %d", id)
	}
	if !bytes.Equal(payload, data) {
		t.Fatalf("payload = %x, want %x", payload, data)
	}
}

func TestCompressedBelowThresholdStaysRaw(t *testing.T) {
	data := []byte{0x01}
	frame := EncodeFrame(1, data, 64)

	_, id, payload, err := DecodeFrame(frame, 64)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if id != 1 || !bytes.Equal(payload, data) {
		t.Fatalf("id=%d payload=%x", id, payload)
	}
}

func TestCompressedAboveThreshold(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}
	frame := EncodeFrame(5, data, 64)

	_, id, payload, err := DecodeFrame(frame, 64)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if id != 5 || !bytes.Equal(payload, data) {
		t.Fatalf("id=%d len(payload)=%d", id, len(payload))
	}
}

func TestDecodeFrameNeedsMoreData(t *testing.T) {
	frame := EncodeFrame(1, []byte{1, 2, 3, 4, 5}, NoCompression)
	_, _, _, err := DecodeFrame(frame[:len(frame)-2], NoCompression)
	if err != ErrNeedMore {
		t.Fatalf("expected ErrNeedMore, got %v", err)
	}
}

func TestInboxDrainsMultipleFrames(t *testing.T) {
	inbox := NewInbox()
	f1 := EncodeFrame(1, []byte{0xAA}, NoCompression)
	f2 := EncodeFrame(2, []byte{0xBB, 0xCC}, NoCompression)

	combined := append(append([]byte{}, f1...), f2...)
	inbox.Feed(combined[:len(combined)-1])

	id, payload, ok, err := inbox.Next()
	if err != nil || !ok || id != 1 || !bytes.Equal(payload, []byte{0xAA}) {
		t.Fatalf("first frame: id=%d ok=%v err=%v payload=%x", id, ok, err, payload)
	}

	_, _, ok, err = inbox.Next()
	if err != nil || ok {
		t.Fatalf("expected incomplete second frame, got ok=%v err=%v", ok, err)
	}

	inbox.Feed(combined[len(combined)-1:])
	id, payload, ok, err = inbox.Next()
	if err != nil || !ok || id != 2 || !bytes.Equal(payload, []byte{0xBB, 0xCC}) {
		t.Fatalf("second frame: id=%d ok=%v err=%v payload=%x", id, ok, err, payload)
	}
}
