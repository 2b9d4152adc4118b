package world

import "testing"

func TestFlatGenerationHeightmap(t *testing.T) {
	c := FlatGeneration()
	// Grass block sits at y = SectionWorldFloor + 4, four blocks above the
	// world floor; heightmap stores "height of topmost occupied block above
	// the floor, plus one".
	want := int32(4) + 1
	if got := c.worldSurface.Get(0, 0); got != want {
		t.Fatalf("worldSurface.Get(0,0) = %d, want %d", got, want)
	}
}

func TestSectionDataRoundTripsThroughEncode(t *testing.T) {
	c := FlatGeneration()
	data := c.SectionData()
	if len(data) == 0 {
		t.Fatalf("expected non-empty section data")
	}
}

func TestHeightmapNBTHasBothMaps(t *testing.T) {
	c := FlatGeneration()
	raw := c.HeightmapsNetworkNBT()
	if len(raw) == 0 {
		t.Fatalf("expected non-empty heightmap NBT")
	}
}

func TestChunkOfFloorDivision(t *testing.T) {
	cases := []struct {
		x, z     int32
		wantX, wantZ int32
	}{
		{0, 0, 0, 0},
		{15, 15, 0, 0},
		{16, 16, 1, 1},
		{-1, -1, -1, -1},
		{-16, -16, -1, -1},
		{-17, -17, -2, -2},
	}
	for _, c := range cases {
		pos := ChunkOf(c.x, c.z)
		if pos.X != c.wantX || pos.Z != c.wantZ {
			t.Fatalf("ChunkOf(%d,%d) = %+v, want {%d %d}", c.x, c.z, pos, c.wantX, c.wantZ)
		}
	}
}
