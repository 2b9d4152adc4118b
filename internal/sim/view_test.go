package sim

import (
	"testing"

	"orewire-server/internal/world"
)

func TestViewSquareDeltaFreshPlayerLoadsFullSquare(t *testing.T) {
	delta := ViewSquareDelta(world.Position{X: 0, Z: 0}, 2, map[world.Position]bool{})
	want := (2*2 + 1) * (2*2 + 1)
	if len(delta.ToLoad) != want {
		t.Fatalf("ToLoad has %d entries, want %d", len(delta.ToLoad), want)
	}
	if len(delta.ToUnload) != 0 {
		t.Fatalf("expected no unloads for a fresh player")
	}
	// Nearest chunk (the center itself) must come first.
	if delta.ToLoad[0] != (world.Position{X: 0, Z: 0}) {
		t.Fatalf("expected center chunk first, got %+v", delta.ToLoad[0])
	}
}

func TestViewSquareDeltaShiftOneChunk(t *testing.T) {
	loaded := map[world.Position]bool{}
	initial := ViewSquareDelta(world.Position{X: 0, Z: 0}, 1, loaded)
	ApplyDelta(loaded, initial)

	shifted := ViewSquareDelta(world.Position{X: 1, Z: 0}, 1, loaded)
	ApplyDelta(loaded, shifted)

	// Moving the 3x3 square one chunk in +x should unload the trailing
	// column (x=-1) and load the leading one (x=2).
	foundUnload := false
	for _, pos := range shifted.ToUnload {
		if pos.X == -1 {
			foundUnload = true
		}
	}
	if !foundUnload {
		t.Fatalf("expected column x=-1 to unload, got %+v", shifted.ToUnload)
	}

	foundLoad := false
	for _, pos := range shifted.ToLoad {
		if pos.X == 2 {
			foundLoad = true
		}
	}
	if !foundLoad {
		t.Fatalf("expected column x=2 to load, got %+v", shifted.ToLoad)
	}
}
