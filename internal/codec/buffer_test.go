package codec

import "testing"

func TestStringRoundTrip(t *testing.T) {
	buf := NewByteBuffer()
	buf.WriteString("hello, orewire")
	buf.SetCursor(0)
	got, err := buf.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "hello, orewire" {
		t.Fatalf("got %q", got)
	}
}

func TestNumericRoundTrip(t *testing.T) {
	buf := NewByteBuffer()
	buf.WriteI32(-12345)
	buf.WriteU16(60000)
	buf.WriteF64(3.14159)
	buf.WriteBool(true)
	buf.WriteI64(-1)

	buf.SetCursor(0)

	i32, err := buf.ReadI32()
	if err != nil || i32 != -12345 {
		t.Fatalf("ReadI32: %d, %v", i32, err)
	}
	u16, err := buf.ReadU16()
	if err != nil || u16 != 60000 {
		t.Fatalf("ReadU16: %d, %v", u16, err)
	}
	f64, err := buf.ReadF64()
	if err != nil || f64 != 3.14159 {
		t.Fatalf("ReadF64: %v, %v", f64, err)
	}
	bl, err := buf.ReadBool()
	if err != nil || !bl {
		t.Fatalf("ReadBool: %v, %v", bl, err)
	}
	i64, err := buf.ReadI64()
	if err != nil || i64 != -1 {
		t.Fatalf("ReadI64: %d, %v", i64, err)
	}
}

func TestReadTruncated(t *testing.T) {
	buf := NewByteBuffer()
	buf.WriteU8(1)
	buf.SetCursor(0)
	if _, err := buf.ReadU32(); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestPositionPacking(t *testing.T) {
	p := Position{X: 18357644, Y: 831, Z: -20882616}
	packed := PackPosition(p)
	got := UnpackPosition(packed)
	if got != p {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", got, p)
	}
}

func TestPositionWireExample(t *testing.T) {
	// 100, -50, 100 is the canonical wiki.vg worked example.
	p := Position{X: 100, Y: -50, Z: 100}
	packed := PackPosition(p)

	buf := NewByteBuffer()
	buf.WriteU64(packed)
	buf.SetCursor(0)
	got, err := buf.ReadPosition()
	if err != nil {
		t.Fatalf("ReadPosition: %v", err)
	}
	if got != p {
		t.Fatalf("got %+v, want %+v", got, p)
	}
}

func TestIdentifierDefaultNamespace(t *testing.T) {
	id := ParseIdentifier("stone")
	if id.Namespace != "minecraft" || id.Key != "stone" {
		t.Fatalf("got %+v", id)
	}
	id2 := ParseIdentifier("orewire:custom_dimension")
	if id2.Namespace != "orewire" || id2.Key != "custom_dimension" {
		t.Fatalf("got %+v", id2)
	}
	if id2.String() != "orewire:custom_dimension" {
		t.Fatalf("String() = %q", id2.String())
	}
}
