// Package codec implements the Minecraft Java Edition wire primitives: a
// growable byte buffer with a read/write cursor, VarInt/VarLong encoding,
// and the handful of scalar types the protocol builds everything else out
// of (strings, UUIDs, identifiers, packed block positions).
//
// All multi-byte numeric scalars are big-endian. Every Read* method returns
// ErrTruncated instead of panicking when the buffer doesn't have enough
// bytes left, so a caller can always recover and drop the offending packet.
package codec

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrTruncated is returned by any Read* call that would read past the end
// of the buffer.
var ErrTruncated = errors.New("codec: truncated buffer")

// ByteBuffer is a growable byte sequence with an independent read/write
// cursor. Writes always append to the end of buf; reads advance cursor.
type ByteBuffer struct {
	buf    []byte
	cursor int
}

// NewByteBuffer returns an empty, writable buffer.
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{}
}

// WrapBytes returns a buffer positioned at the start of an existing byte
// slice, ready for reading. The slice is not copied.
func WrapBytes(b []byte) *ByteBuffer {
	return &ByteBuffer{buf: b}
}

// Bytes returns the full backing slice (not just the unread remainder).
func (b *ByteBuffer) Bytes() []byte {
	return b.buf
}

// Remaining returns the number of unread bytes.
func (b *ByteBuffer) Remaining() int {
	return len(b.buf) - b.cursor
}

// Cursor returns the current read/write offset.
func (b *ByteBuffer) Cursor() int {
	return b.cursor
}

// SetCursor repositions the cursor for re-reading already-buffered bytes.
func (b *ByteBuffer) SetCursor(pos int) {
	b.cursor = pos
}

// Len returns the total length of the backing slice.
func (b *ByteBuffer) Len() int {
	return len(b.buf)
}

func (b *ByteBuffer) requireRemaining(n int) error {
	if b.Remaining() < n {
		return ErrTruncated
	}
	return nil
}

// ReadBytes reads and returns the next n bytes verbatim.
func (b *ByteBuffer) ReadBytes(n int) ([]byte, error) {
	if err := b.requireRemaining(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b.buf[b.cursor:b.cursor+n])
	b.cursor += n
	return out, nil
}

// RemainderBytes consumes and returns every byte left in the buffer.
func (b *ByteBuffer) RemainderBytes() []byte {
	out := b.buf[b.cursor:]
	b.cursor = len(b.buf)
	return out
}

// WriteBytes appends raw bytes.
func (b *ByteBuffer) WriteBytes(p []byte) {
	b.buf = append(b.buf, p...)
	b.cursor = len(b.buf)
}

// ReadByte implements io.ByteReader, which VarInt/VarLong decoding needs.
func (b *ByteBuffer) ReadByte() (byte, error) {
	if err := b.requireRemaining(1); err != nil {
		return 0, err
	}
	v := b.buf[b.cursor]
	b.cursor++
	return v, nil
}

func (b *ByteBuffer) ReadU8() (uint8, error)   { return b.ReadByte() }
func (b *ByteBuffer) WriteU8(v uint8)          { b.buf = append(b.buf, v); b.cursor = len(b.buf) }
func (b *ByteBuffer) ReadI8() (int8, error)    { v, err := b.ReadByte(); return int8(v), err }
func (b *ByteBuffer) WriteI8(v int8)           { b.WriteU8(uint8(v)) }
func (b *ByteBuffer) ReadBool() (bool, error)  { v, err := b.ReadByte(); return v != 0, err }
func (b *ByteBuffer) WriteBool(v bool) {
	if v {
		b.WriteU8(1)
	} else {
		b.WriteU8(0)
	}
}

func (b *ByteBuffer) ReadU16() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(bs), nil
}

func (b *ByteBuffer) WriteU16(v uint16) {
	var bs [2]byte
	binary.BigEndian.PutUint16(bs[:], v)
	b.WriteBytes(bs[:])
}

func (b *ByteBuffer) ReadI16() (int16, error) {
	v, err := b.ReadU16()
	return int16(v), err
}

func (b *ByteBuffer) WriteI16(v int16) { b.WriteU16(uint16(v)) }

func (b *ByteBuffer) ReadU32() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(bs), nil
}

func (b *ByteBuffer) WriteU32(v uint32) {
	var bs [4]byte
	binary.BigEndian.PutUint32(bs[:], v)
	b.WriteBytes(bs[:])
}

func (b *ByteBuffer) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

func (b *ByteBuffer) WriteI32(v int32) { b.WriteU32(uint32(v)) }

func (b *ByteBuffer) ReadU64() (uint64, error) {
	bs, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(bs), nil
}

func (b *ByteBuffer) WriteU64(v uint64) {
	var bs [8]byte
	binary.BigEndian.PutUint64(bs[:], v)
	b.WriteBytes(bs[:])
}

func (b *ByteBuffer) ReadI64() (int64, error) {
	v, err := b.ReadU64()
	return int64(v), err
}

func (b *ByteBuffer) WriteI64(v int64) { b.WriteU64(uint64(v)) }

func (b *ByteBuffer) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	return math.Float32frombits(v), err
}

func (b *ByteBuffer) WriteF32(v float32) { b.WriteU32(math.Float32bits(v)) }

func (b *ByteBuffer) ReadF64() (float64, error) {
	v, err := b.ReadU64()
	return math.Float64frombits(v), err
}

func (b *ByteBuffer) WriteF64(v float64) { b.WriteU64(math.Float64bits(v)) }

func (b *ByteBuffer) ReadU128() ([16]byte, error) {
	var out [16]byte
	bs, err := b.ReadBytes(16)
	if err != nil {
		return out, err
	}
	copy(out[:], bs)
	return out, nil
}

func (b *ByteBuffer) WriteU128(v [16]byte) { b.WriteBytes(v[:]) }

// ReadString reads a VarInt-prefixed, length-in-bytes-not-runes UTF-8 string.
func (b *ByteBuffer) ReadString() (string, error) {
	n, err := ReadVarInt(b)
	if err != nil {
		return "", err
	}
	if n < 0 || n > 1<<21 {
		return "", errors.New("codec: negative or absurd string length")
	}
	bs, err := b.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// WriteString writes VarInt(byte length) || UTF-8 bytes.
func (b *ByteBuffer) WriteString(s string) {
	WriteVarInt(b, int32(len(s)))
	b.WriteBytes([]byte(s))
}

// ReadByteArray reads a VarInt-prefixed byte array.
func (b *ByteBuffer) ReadByteArray() ([]byte, error) {
	n, err := ReadVarInt(b)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.New("codec: negative byte array length")
	}
	return b.ReadBytes(int(n))
}

// WriteByteArray writes VarInt(count) || bytes.
func (b *ByteBuffer) WriteByteArray(p []byte) {
	WriteVarInt(b, int32(len(p)))
	b.WriteBytes(p)
}

// ReadInferredByteArray consumes the rest of the buffer verbatim; used for
// payloads whose length is already implied by the outer envelope.
func (b *ByteBuffer) ReadInferredByteArray() []byte {
	return b.RemainderBytes()
}

// ReadUUID reads 16 big-endian bytes.
func (b *ByteBuffer) ReadUUID() ([16]byte, error) { return b.ReadU128() }

// WriteUUID writes 16 big-endian bytes.
func (b *ByteBuffer) WriteUUID(v [16]byte) { b.WriteU128(v) }
