package world

import (
	"orewire-server/internal/codec"
	"orewire-server/internal/nbt"
)

// Section is one 16x16x16 slice of a chunk column, stored as a dense
// block-id array indexed in vanilla's y,z,x iteration order so the wire
// encoding below matches what a real client expects.
type Section struct {
	blocks [16 * 16 * 16]int32
	count  int
}

func newSection() *Section {
	return &Section{}
}

var emptySection = newSection()

func sectionIndex(x, y, z int32) int {
	return int(y)<<8 | int(z)<<4 | int(x)
}

func (s *Section) setBlock(x, y, z int32, block int32) {
	idx := sectionIndex(x, y, z)
	if s.blocks[idx] == 0 && block != 0 {
		s.count++
	} else if s.blocks[idx] != 0 && block == 0 {
		s.count--
	}
	s.blocks[idx] = block
}

// encode writes this section using the direct palette scheme: a uniform
// (all-one-block, including all-air) section is a zero-bits-per-entry
// palette naming the single block and an empty packed-data array;
// anything else uses a 15-bits-per-entry direct palette (one entry per
// block, no indirection), which is always valid for protocol 767's block
// state id range and simplest to get right. Biome data is left as the
// single-valued "all plains" stub both forms always carry.
func (s *Section) encode(buf *codec.ByteBuffer) {
	buf.WriteU16(uint16(s.count))

	uniform := true
	for _, b := range s.blocks[1:] {
		if b != s.blocks[0] {
			uniform = false
			break
		}
	}

	if uniform {
		buf.WriteU8(0)
		buf.WriteVarInt(s.blocks[0])
		buf.WriteVarInt(0)
	} else {
		buf.WriteU8(15)
		packed := nbt.PackEntries(s.blocks[:], 15)
		buf.WriteVarInt(int32(len(packed)))
		for _, v := range packed {
			buf.WriteI64(v)
		}
	}

	// Biome palette: single-valued, biome id 0 (plains), empty data array.
	buf.WriteU8(0)
	buf.WriteVarInt(0)
	buf.WriteVarInt(0)
}
