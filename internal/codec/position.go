package codec

// Position is a block coordinate packed into a single 64-bit wire value:
// 26 bits of x, 26 bits of z, then 12 bits of y, each two's-complement and
// sign-extended back out on decode.
type Position struct {
	X int32
	Y int16
	Z int32
}

// ReadPosition unpacks x<<38 | z<<12 | y from a big-endian u64, sign
// extending each field from its bit width.
func (b *ByteBuffer) ReadPosition() (Position, error) {
	raw, err := b.ReadU64()
	if err != nil {
		return Position{}, err
	}
	return UnpackPosition(raw), nil
}

// WritePosition packs and writes a Position.
func (b *ByteBuffer) WritePosition(p Position) {
	b.WriteU64(PackPosition(p))
}

// PackPosition encodes p as (x<<38 | z<<12 | y), masking each field to its
// bit width first.
func PackPosition(p Position) uint64 {
	x := uint64(p.X) & 0x3FFFFFF
	z := uint64(p.Z) & 0x3FFFFFF
	y := uint64(p.Y) & 0xFFF
	return (x << 38) | (z << 12) | y
}

// UnpackPosition decodes a packed position value, sign-extending each of
// the 26/26/12 bit fields.
func UnpackPosition(raw uint64) Position {
	x := int32(signExtend(raw>>38, 26))
	z := int32(signExtend(raw>>12, 26))
	y := int16(signExtend(raw, 12))
	return Position{X: x, Y: y, Z: z}
}

func signExtend(v uint64, bits uint) int64 {
	v &= (1 << bits) - 1
	signBit := uint64(1) << (bits - 1)
	return int64(v^signBit) - int64(signBit)
}
