// Package nbt implements Named Binary Tag encoding: the tagged tree format
// Minecraft uses for chunk data, entity data, and (in "network" mode,
// where the root compound's name is omitted) registry payloads and chat
// components sent as part of the play protocol.
package nbt

import (
	"errors"
	"fmt"

	"orewire-server/internal/codec"
)

// TagID identifies the payload type of a tag, written as a single byte
// ahead of every named tag (and ahead of every Compound entry).
type TagID byte

const (
	IDEnd TagID = iota
	IDByte
	IDShort
	IDInt
	IDLong
	IDFloat
	IDDouble
	IDByteArray
	IDString
	IDList
	IDCompound
	IDIntArray
	IDLongArray
)

// Errors returned by Decode when the input is structurally invalid.
var (
	ErrTruncated      = errors.New("nbt: truncated input")
	ErrBadTagID       = errors.New("nbt: unknown tag id")
	ErrMixedListTypes = errors.New("nbt: list tag elements must share one tag id")
	ErrNegativeLength = errors.New("nbt: negative length prefix")
)

// Tag is any NBT payload. The concrete types below are the 12 variants of
// the format; End never appears as a value, only as a Compound/List
// terminator or empty-list marker.
type Tag interface {
	ID() TagID
}

type (
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []byte
	String    string
	List      []Tag
	IntArray  []int32
	LongArray []int64
)

func (Byte) ID() TagID      { return IDByte }
func (Short) ID() TagID     { return IDShort }
func (Int) ID() TagID       { return IDInt }
func (Long) ID() TagID      { return IDLong }
func (Float) ID() TagID     { return IDFloat }
func (Double) ID() TagID    { return IDDouble }
func (ByteArray) ID() TagID { return IDByteArray }
func (String) ID() TagID    { return IDString }
func (List) ID() TagID      { return IDList }
func (IntArray) ID() TagID  { return IDIntArray }
func (LongArray) ID() TagID { return IDLongArray }

// CompoundEntry is a single named child of a Compound, kept in insertion
// order rather than a map so re-encoding is deterministic and registry
// JSON's field order survives the round trip.
type CompoundEntry struct {
	Name string
	Tag  Tag
}

// Compound is an ordered list of named tags, terminated on the wire by an
// End tag.
type Compound []CompoundEntry

func (Compound) ID() TagID { return IDCompound }

// Get returns the child tag named name, or nil if there is none.
func (c Compound) Get(name string) Tag {
	for _, e := range c {
		if e.Name == name {
			return e.Tag
		}
	}
	return nil
}

// WithEntry returns c with (name, tag) appended; used to build compounds
// fluently without a mutable builder type.
func (c Compound) WithEntry(name string, tag Tag) Compound {
	return append(c, CompoundEntry{Name: name, Tag: tag})
}

// encodeNamed writes tag's id, its name (unless networkRoot is set, which
// EncodeNetwork does for the root Compound),
// and its payload. The only failure mode is ErrMixedListTypes, surfaced
// from a List tag whose elements don't share one tag id.
func encodeNamed(buf *codec.ByteBuffer, name string, tag Tag, networkRoot bool) error {
	buf.WriteU8(uint8(tag.ID()))
	return encodePayload(buf, name, tag, networkRoot)
}

func writeName(buf *codec.ByteBuffer, name string) {
	buf.WriteU16(uint16(len(name)))
	buf.WriteBytes([]byte(name))
}

// encodePayload writes a tag's name (except where networkRoot suppresses
// it, for exactly the outermost Compound) followed by its payload bytes.
// networkRoot is consumed after the first Compound is written, mirroring
// fe2o3_nbt's NBT.network flag: only the root compound's name can ever be
// omitted, nested compounds always carry a name. Returns
// ErrMixedListTypes if tag (or anything nested under it) is a List whose
// elements don't all share one tag id; this is the only failure mode, so
// there is nothing else to recover from mid-write — a caller that sees an
// error should discard buf rather than try to reuse the partial bytes.
func encodePayload(buf *codec.ByteBuffer, name string, tag Tag, networkRoot bool) error {
	switch t := tag.(type) {
	case Byte:
		writeName(buf, name)
		buf.WriteI8(int8(t))
	case Short:
		writeName(buf, name)
		buf.WriteI16(int16(t))
	case Int:
		writeName(buf, name)
		buf.WriteI32(int32(t))
	case Long:
		writeName(buf, name)
		buf.WriteI64(int64(t))
	case Float:
		writeName(buf, name)
		buf.WriteF32(float32(t))
	case Double:
		writeName(buf, name)
		buf.WriteF64(float64(t))
	case ByteArray:
		writeName(buf, name)
		buf.WriteI32(int32(len(t)))
		buf.WriteBytes(t)
	case String:
		writeName(buf, name)
		buf.WriteU16(uint16(len(t)))
		buf.WriteBytes([]byte(t))
	case IntArray:
		writeName(buf, name)
		buf.WriteI32(int32(len(t)))
		for _, v := range t {
			buf.WriteI32(v)
		}
	case LongArray:
		writeName(buf, name)
		buf.WriteI32(int32(len(t)))
		for _, v := range t {
			buf.WriteI64(v)
		}
	case List:
		writeName(buf, name)
		if len(t) == 0 {
			buf.WriteU8(uint8(IDEnd))
		} else {
			buf.WriteU8(uint8(t[0].ID()))
		}
		buf.WriteI32(int32(len(t)))
		for _, elem := range t {
			if err := encodeListElement(buf, elem, t[0].ID()); err != nil {
				return err
			}
		}
	case Compound:
		if !networkRoot {
			writeName(buf, name)
		}
		for _, e := range t {
			if err := encodeNamed(buf, e.Name, e.Tag, false); err != nil {
				return err
			}
		}
		buf.WriteU8(uint8(IDEnd))
	default:
		panic(fmt.Sprintf("nbt: unhandled tag type %T", tag))
	}
	return nil
}

// encodeListElement writes a list member's payload with no id byte and no
// name, per the format's rule that homogeneous list elements only ever
// carry their shared id once, up front. Returns ErrMixedListTypes if tag
// doesn't carry expect's id.
func encodeListElement(buf *codec.ByteBuffer, tag Tag, expect TagID) error {
	if tag.ID() != expect {
		return ErrMixedListTypes
	}
	switch t := tag.(type) {
	case Byte:
		buf.WriteI8(int8(t))
	case Short:
		buf.WriteI16(int16(t))
	case Int:
		buf.WriteI32(int32(t))
	case Long:
		buf.WriteI64(int64(t))
	case Float:
		buf.WriteF32(float32(t))
	case Double:
		buf.WriteF64(float64(t))
	case ByteArray:
		buf.WriteI32(int32(len(t)))
		buf.WriteBytes(t)
	case String:
		buf.WriteU16(uint16(len(t)))
		buf.WriteBytes([]byte(t))
	case IntArray:
		buf.WriteI32(int32(len(t)))
		for _, v := range t {
			buf.WriteI32(v)
		}
	case LongArray:
		buf.WriteI32(int32(len(t)))
		for _, v := range t {
			buf.WriteI64(v)
		}
	case List:
		if len(t) == 0 {
			buf.WriteU8(uint8(IDEnd))
		} else {
			buf.WriteU8(uint8(t[0].ID()))
		}
		buf.WriteI32(int32(len(t)))
		for _, elem := range t {
			if err := encodeListElement(buf, elem, t[0].ID()); err != nil {
				return err
			}
		}
	case Compound:
		for _, e := range t {
			if err := encodeNamed(buf, e.Name, e.Tag, false); err != nil {
				return err
			}
		}
		buf.WriteU8(uint8(IDEnd))
	}
	return nil
}

func readName(buf *codec.ByteBuffer) (string, error) {
	n, err := buf.ReadU16()
	if err != nil {
		return "", err
	}
	bs, err := buf.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// decodePayload reads the payload for a tag whose id has already been
// consumed by the caller.
func decodePayload(buf *codec.ByteBuffer, id TagID) (Tag, error) {
	switch id {
	case IDByte:
		v, err := buf.ReadI8()
		return Byte(v), err
	case IDShort:
		v, err := buf.ReadI16()
		return Short(v), err
	case IDInt:
		v, err := buf.ReadI32()
		return Int(v), err
	case IDLong:
		v, err := buf.ReadI64()
		return Long(v), err
	case IDFloat:
		v, err := buf.ReadF32()
		return Float(v), err
	case IDDouble:
		v, err := buf.ReadF64()
		return Double(v), err
	case IDByteArray:
		n, err := buf.ReadI32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrNegativeLength
		}
		bs, err := buf.ReadBytes(int(n))
		return ByteArray(bs), err
	case IDString:
		s, err := readName(buf)
		return String(s), err
	case IDIntArray:
		n, err := buf.ReadI32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrNegativeLength
		}
		out := make(IntArray, n)
		for i := range out {
			v, err := buf.ReadI32()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case IDLongArray:
		n, err := buf.ReadI32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, ErrNegativeLength
		}
		out := make(LongArray, n)
		for i := range out {
			v, err := buf.ReadI64()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case IDList:
		elemIDRaw, err := buf.ReadU8()
		if err != nil {
			return nil, err
		}
		elemID := TagID(elemIDRaw)
		n, err := buf.ReadI32()
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return List{}, nil
		}
		out := make(List, n)
		for i := range out {
			tag, err := decodePayload(buf, elemID)
			if err != nil {
				return nil, err
			}
			out[i] = tag
		}
		return out, nil
	case IDCompound:
		var out Compound
		for {
			childIDRaw, err := buf.ReadU8()
			if err != nil {
				return nil, err
			}
			childID := TagID(childIDRaw)
			if childID == IDEnd {
				break
			}
			name, err := readName(buf)
			if err != nil {
				return nil, err
			}
			tag, err := decodePayload(buf, childID)
			if err != nil {
				return nil, err
			}
			out = append(out, CompoundEntry{Name: name, Tag: tag})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrBadTagID, id)
	}
}
