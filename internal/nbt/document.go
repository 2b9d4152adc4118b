package nbt

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"

	"orewire-server/internal/codec"
)

// EncodeNetwork writes root as a network-mode document: the root
// Compound's id byte is written but its name is omitted. This is the
// shape used for registry data and chat component tags embedded directly
// in play-phase packets. Returns ErrMixedListTypes if root contains a
// List whose elements don't all share one tag id; encoding is otherwise
// infallible, since Compound/List are the only recursive, validatable
// shapes in the tree.
func EncodeNetwork(root Compound) ([]byte, error) {
	buf := codec.NewByteBuffer()
	if err := encodeNamed(buf, "", root, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeDisk writes root as a disk-mode document: the root Compound's id,
// name, and payload are all written, matching the on-disk/chunk-section
// format (and what a vanilla client expects from a region file or an
// uncompressed structure NBT blob). Returns ErrMixedListTypes under the
// same condition as EncodeNetwork.
func EncodeDisk(name string, root Compound) ([]byte, error) {
	buf := codec.NewByteBuffer()
	if err := encodeNamed(buf, name, root, false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeNetwork reads a network-mode document (root Compound with no
// name) from raw, uncompressed bytes.
func DecodeNetwork(raw []byte) (Compound, error) {
	buf := codec.WrapBytes(raw)
	return DecodeNetworkFrom(buf)
}

// DecodeNetworkFrom reads one network-mode document directly off buf's
// cursor, consuming only as many bytes as the document actually needs.
// Unlike DecodeNetwork, this lets a caller that's mid-way through
// decoding a larger packet (e.g. a RegistryData entry list, where NBT
// documents are packed back to back with no length prefix of their own)
// read exactly one document and keep going from where it left off.
func DecodeNetworkFrom(buf *codec.ByteBuffer) (Compound, error) {
	idRaw, err := buf.ReadU8()
	if err != nil {
		return nil, err
	}
	if TagID(idRaw) != IDCompound {
		return nil, fmt.Errorf("%w: root is not a compound", ErrBadTagID)
	}
	tag, err := decodePayload(buf, IDCompound)
	if err != nil {
		return nil, err
	}
	return tag.(Compound), nil
}

// DecodeDisk reads a disk-mode document (root Compound carries a name)
// from raw, uncompressed bytes, returning the root's name alongside its
// contents.
func DecodeDisk(raw []byte) (name string, root Compound, err error) {
	buf := codec.WrapBytes(raw)
	idRaw, err := buf.ReadU8()
	if err != nil {
		return "", nil, err
	}
	if TagID(idRaw) != IDCompound {
		return "", nil, fmt.Errorf("%w: root is not a compound", ErrBadTagID)
	}
	name, err = readName(buf)
	if err != nil {
		return "", nil, err
	}
	tag, err := decodePayload(buf, IDCompound)
	if err != nil {
		return "", nil, err
	}
	return name, tag.(Compound), nil
}

const (
	gzipMagic0 = 0x1f
	gzipMagic1 = 0x8b
	zlibMagic0 = 0x78
)

// DecodeDiskAuto reads a disk-mode document that may be gzip- or
// zlib-compressed (as region-file chunk payloads and structure NBT files
// commonly are), auto-detecting the compression from the leading magic
// bytes before falling back to treating raw as already-uncompressed NBT.
func DecodeDiskAuto(raw []byte) (name string, root Compound, err error) {
	decompressed, err := autoDecompress(raw)
	if err != nil {
		return "", nil, err
	}
	return DecodeDisk(decompressed)
}

func autoDecompress(raw []byte) ([]byte, error) {
	if len(raw) >= 2 && raw[0] == gzipMagic0 && raw[1] == gzipMagic1 {
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	if len(raw) >= 1 && raw[0] == zlibMagic0 {
		r, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	}
	return raw, nil
}
