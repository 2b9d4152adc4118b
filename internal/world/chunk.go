// Package world implements flat-world chunk generation and the section/
// heightmap encoding the Play protocol's ChunkDataAndUpdateLight packet
// needs.
package world

import (
	"fmt"

	"orewire-server/internal/codec"
	"orewire-server/internal/nbt"
)

// SectionCount is the number of 16x16x16 sections stacked per column
// (world height -64..319, i.e. 384 blocks / 16).
const SectionCount = 24

// SectionWorldFloor is the y coordinate of the bottom of section 0.
const SectionWorldFloor = -64

// Position names a chunk column by its chunk-grid coordinates (block
// coordinate / 16, floor division).
type Position struct {
	X, Z int32
}

// ChunkOf returns the chunk Position containing the given block
// coordinates.
func ChunkOf(blockX, blockZ int32) Position {
	return Position{X: floorDiv(blockX, 16), Z: floorDiv(blockZ, 16)}
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Chunk is one 16-wide, 384-tall column of blocks, stored as 24 stacked
// sections plus the two heightmaps vanilla clients expect.
type Chunk struct {
	sections          [SectionCount]*Section
	motionBlocking    HeightMap
	worldSurface      HeightMap
}

// NewChunk returns an empty chunk (all air, zero heightmaps).
func NewChunk() *Chunk {
	return &Chunk{}
}

// FlatGeneration returns a superflat chunk matching the reference
// server's default world: bedrock at y=-64, three layers of dirt above
// it, grass on top.
func FlatGeneration() *Chunk {
	c := NewChunk()
	for x := int32(0); x < 16; x++ {
		for z := int32(0); z < 16; z++ {
			c.SetBlock(x, SectionWorldFloor, z, BlockBedrock)
			for y := int32(SectionWorldFloor + 1); y < SectionWorldFloor+4; y++ {
				c.SetBlock(x, y, z, BlockDirt)
			}
			c.SetBlock(x, SectionWorldFloor+4, z, BlockGrassBlock)
		}
	}
	return c
}

// Block ids used by FlatGeneration, chosen to match the reference
// server's flat-world scheme (bedrock/dirt/grass_block in the vanilla
// block-state registry, as of protocol 767's block report).
const (
	BlockBedrock    = 79
	BlockDirt       = 10
	BlockGrassBlock = 9
)

// SetBlock places a block at column-local x/z and absolute world y,
// updating both heightmaps (world surface tracks the topmost non-air
// block; motion blocking, in the absence of any per-block solidity
// table, is kept in lockstep with it).
func (c *Chunk) SetBlock(x, y, z int32, block int32) {
	sectionIdx := (y - SectionWorldFloor) / 16
	localY := (y - SectionWorldFloor) % 16
	if c.sections[sectionIdx] == nil {
		c.sections[sectionIdx] = newSection()
	}
	c.sections[sectionIdx].setBlock(x, localY, z, block)

	height := y - SectionWorldFloor + 1
	if height > c.worldSurface.Get(x, z) {
		c.worldSurface.Set(x, z, height)
		c.motionBlocking.Set(x, z, height)
	}
}

// HeightmapsNetworkNBT renders the chunk's two heightmaps as the
// network-mode NBT compound ChunkDataAndUpdateLight embeds.
func (c *Chunk) HeightmapsNetworkNBT() []byte {
	root := nbt.Compound{}.
		WithEntry("WORLD_SURFACE", c.worldSurface.PackedLongArray()).
		WithEntry("MOTION_BLOCKING", c.motionBlocking.PackedLongArray())
	// Both entries are LongArray, never List, so this can't fail; a
	// failure would mean this function stopped matching that shape.
	out, err := nbt.EncodeNetwork(root)
	if err != nil {
		panic(fmt.Sprintf("world: heightmap produced invalid nbt: %v", err))
	}
	return out
}

// SectionData serializes every section back to back, the shape
// ChunkDataAndUpdateLight's "data" field expects.
func (c *Chunk) SectionData() []byte {
	buf := codec.NewByteBuffer()
	for _, s := range c.sections {
		if s == nil {
			s = emptySection
		}
		s.encode(buf)
	}
	return buf.Bytes()
}
