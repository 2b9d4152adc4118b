package codec

import "testing"

func TestVarIntRoundTrip(t *testing.T) {
	cases := []int32{0, 1, 2, 127, 128, 255, 2097151, 2147483647, -1, -2147483648}
	for _, v := range cases {
		buf := NewByteBuffer()
		WriteVarInt(buf, v)
		buf.SetCursor(0)
		got, err := ReadVarInt(buf)
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("roundtrip mismatch: wrote %d, read %d", v, got)
		}
	}
}

func TestVarIntKnownEncodings(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}
	for _, c := range cases {
		buf := NewByteBuffer()
		WriteVarInt(buf, c.v)
		got := buf.Bytes()
		if len(got) != len(c.want) {
			t.Fatalf("v=%d: length mismatch got %x want %x", c.v, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("v=%d: byte %d mismatch got %x want %x", c.v, i, got, c.want)
			}
		}
	}
}

func TestVarIntOverflow(t *testing.T) {
	// Five continuation bytes in a row (a sixth byte following) must be
	// rejected rather than silently wrapping to zero.
	buf := NewByteBuffer()
	for i := 0; i < 5; i++ {
		buf.WriteU8(0xFF)
	}
	buf.WriteU8(0x7F)
	buf.SetCursor(0)

	_, err := ReadVarInt(buf)
	if err != ErrVarIntTooBig {
		t.Fatalf("expected ErrVarIntTooBig, got %v", err)
	}
}

func TestVarLongRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 127, 128, 9223372036854775807, -9223372036854775808}
	for _, v := range cases {
		buf := NewByteBuffer()
		WriteVarLong(buf, v)
		buf.SetCursor(0)
		got, err := ReadVarLong(buf)
		if err != nil {
			t.Fatalf("ReadVarLong(%d): %v", v, err)
		}
		if got != v {
			t.Fatalf("roundtrip mismatch: wrote %d, read %d", v, got)
		}
	}
}

func TestVarLongOverflow(t *testing.T) {
	buf := NewByteBuffer()
	for i := 0; i < 10; i++ {
		buf.WriteU8(0xFF)
	}
	buf.WriteU8(0x7F)
	buf.SetCursor(0)

	_, err := ReadVarLong(buf)
	if err != ErrVarLongTooBig {
		t.Fatalf("expected ErrVarLongTooBig, got %v", err)
	}
}

func TestVarIntSize(t *testing.T) {
	cases := []struct {
		v    int32
		size int
	}{
		{0, 1}, {127, 1}, {128, 2}, {2097151, 3}, {2147483647, 5}, {-1, 5},
	}
	for _, c := range cases {
		if got := VarIntSize(c.v); got != c.size {
			t.Fatalf("VarIntSize(%d) = %d, want %d", c.v, got, c.size)
		}
	}
}
