package sim

import (
	"sort"

	"orewire-server/internal/world"
)

// ChunkDelta is the set of chunk columns that need to be sent or dropped
// when a player's view square moves, computed by ViewSquareDelta.
type ChunkDelta struct {
	ToLoad   []world.Position
	ToUnload []world.Position
}

// ViewSquareDelta computes which chunk columns enter and leave a square
// view distance centered on center, relative to loaded (the player's
// currently-tracked set). ToLoad is sorted by squared distance from
// center so the nearest chunks go out first, matching how a real client
// expects chunks to stream in.
func ViewSquareDelta(center world.Position, viewDistance int8, loaded map[world.Position]bool) ChunkDelta {
	wanted := make(map[world.Position]bool, int(viewDistance)*int(viewDistance)*4)
	var delta ChunkDelta

	d := int32(viewDistance)
	for dx := -d; dx <= d; dx++ {
		for dz := -d; dz <= d; dz++ {
			pos := world.Position{X: center.X + dx, Z: center.Z + dz}
			wanted[pos] = true
			if !loaded[pos] {
				delta.ToLoad = append(delta.ToLoad, pos)
			}
		}
	}

	for pos := range loaded {
		if !wanted[pos] {
			delta.ToUnload = append(delta.ToUnload, pos)
		}
	}

	sort.Slice(delta.ToLoad, func(i, j int) bool {
		return squaredDistance(center, delta.ToLoad[i]) < squaredDistance(center, delta.ToLoad[j])
	})

	return delta
}

func squaredDistance(a, b world.Position) int64 {
	dx := int64(a.X - b.X)
	dz := int64(a.Z - b.Z)
	return dx*dx + dz*dz
}

// ApplyDelta updates loaded in place to reflect a computed ChunkDelta,
// called once the corresponding load/unload packets have actually been
// queued for send.
func ApplyDelta(loaded map[world.Position]bool, delta ChunkDelta) {
	for _, pos := range delta.ToLoad {
		loaded[pos] = true
	}
	for _, pos := range delta.ToUnload {
		delete(loaded, pos)
	}
}
