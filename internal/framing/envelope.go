// Package framing implements the outer packet envelope: a VarInt length
// prefix around either a plain VarInt(id)||data payload, or — once
// compression has been negotiated via SetCompression — a
// VarInt(dataLength)||zlib(VarInt(id)||data) payload (with dataLength
// left at 0 to mean "not worth compressing, sent raw" for small
// packets).
package framing

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"

	"orewire-server/internal/codec"
)

// ErrNeedMore signals that buf does not yet hold a complete frame; the
// caller should read more bytes off the socket and retry.
var ErrNeedMore = errors.New("framing: need more data")

// NoCompression disables the compressed envelope entirely; EncodeFrame
// and DecodeFrame both treat it as "no threshold was ever negotiated".
const NoCompression = -1

// DecodeFrame attempts to pull one complete frame out of buf. On success
// it returns the number of leading bytes of buf that the frame consumed,
// the packet id, and its decompressed payload. threshold is the
// compression threshold last announced via SetCompression, or
// NoCompression if none has been.
func DecodeFrame(buf []byte, threshold int) (consumed int, id int32, payload []byte, err error) {
	lenBuf := codec.WrapBytes(buf)
	frameLen, err := codec.ReadVarInt(lenBuf)
	if err != nil {
		return 0, 0, nil, ErrNeedMore
	}
	if frameLen < 0 {
		return 0, 0, nil, errors.New("framing: negative frame length")
	}

	lenFieldSize := lenBuf.Cursor()
	total := lenFieldSize + int(frameLen)
	if len(buf) < total {
		return 0, 0, nil, ErrNeedMore
	}

	body := buf[lenFieldSize:total]

	if threshold == NoCompression {
		id, payload, err := decodeUncompressedBody(body)
		if err != nil {
			return 0, 0, nil, err
		}
		return total, id, payload, nil
	}

	id, payload, err = decodeCompressedBody(body)
	if err != nil {
		return 0, 0, nil, err
	}
	return total, id, payload, nil
}

// decodeUncompressedBody reads VarInt(id)||data, computing data's length
// from the VarInt's actual encoded width instead of assuming the id
// always fits in one byte (the bug present in the Rust reference for ids
// >= 128, where the length field's "minus one byte for the id" arithmetic
// silently truncates the payload by one byte too many).
func decodeUncompressedBody(body []byte) (int32, []byte, error) {
	buf := codec.WrapBytes(body)
	id, err := codec.ReadVarInt(buf)
	if err != nil {
		return 0, nil, err
	}
	idBytes := buf.Cursor()
	return id, body[idBytes:], nil
}

// decodeCompressedBody reads VarInt(dataLength) then either raw
// VarInt(id)||data (dataLength == 0, meaning the sender decided the
// packet was too small to be worth compressing) or zlib(VarInt(id)||data)
// inflated out to exactly dataLength bytes.
func decodeCompressedBody(body []byte) (int32, []byte, error) {
	buf := codec.WrapBytes(body)
	dataLength, err := codec.ReadVarInt(buf)
	if err != nil {
		return 0, nil, err
	}
	rest := body[buf.Cursor():]

	if dataLength == 0 {
		return decodeUncompressedBody(rest)
	}
	if dataLength < 0 {
		return 0, nil, errors.New("framing: negative data length")
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return 0, nil, err
	}
	defer zr.Close()
	inflated, err := io.ReadAll(io.LimitReader(zr, int64(dataLength)+1))
	if err != nil {
		return 0, nil, err
	}
	if int32(len(inflated)) != dataLength {
		return 0, nil, errors.New("framing: decompressed length mismatch")
	}
	return decodeUncompressedBody(inflated)
}

// EncodeFrame builds the complete wire envelope for one outgoing packet.
// threshold is the currently negotiated compression threshold, or
// NoCompression to force the plain envelope regardless of size (the
// SetCompression packet itself must always be sent this way, since the
// client doesn't start expecting the compressed envelope until it has
// processed that packet).
func EncodeFrame(id int32, data []byte, threshold int) []byte {
	inner := codec.NewByteBuffer()
	inner.WriteVarInt(id)
	inner.WriteBytes(data)
	uncompressed := inner.Bytes()

	if threshold == NoCompression {
		return wrapLength(uncompressed)
	}

	body := codec.NewByteBuffer()
	if len(uncompressed) < threshold {
		body.WriteVarInt(0)
		body.WriteBytes(uncompressed)
	} else {
		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		_, _ = zw.Write(uncompressed)
		_ = zw.Close()
		body.WriteVarInt(int32(len(uncompressed)))
		body.WriteBytes(compressed.Bytes())
	}
	return wrapLength(body.Bytes())
}

func wrapLength(body []byte) []byte {
	out := codec.NewByteBuffer()
	out.WriteVarInt(int32(len(body)))
	out.WriteBytes(body)
	return out.Bytes()
}
