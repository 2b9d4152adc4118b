package sim

import "testing"

func TestMoveRelativeAcceptsSlowMovement(t *testing.T) {
	p := NewPlayer("steve", [16]byte{}, "en_us", MainHandRight)
	result := p.MoveRelative(Location{X: 0.1, Y: 0, Z: 0})
	if result != MoveAccepted {
		t.Fatalf("expected MoveAccepted, got %v", result)
	}
	if p.Location.X != 0.1 {
		t.Fatalf("location not applied: %+v", p.Location)
	}
}

func TestMoveRelativeRejectsFastMovement(t *testing.T) {
	p := NewPlayer("steve", [16]byte{}, "en_us", MainHandRight)
	p.Location = NewLocation(5, 5, 5)
	result := p.MoveRelative(Location{X: 10, Y: 0, Z: 0})
	if result != MoveRejectedTeleportedBack {
		t.Fatalf("expected MoveRejectedTeleportedBack, got %v", result)
	}
	if p.Location.X != 5 {
		t.Fatalf("location should not have moved, got %+v", p.Location)
	}
	if len(p.TeleportRequests) != 1 {
		t.Fatalf("expected a queued corrective teleport, got %d", len(p.TeleportRequests))
	}
}

func TestMoveRelativeRejectionAcknowledgeLeavesLocationUnchanged(t *testing.T) {
	p := NewPlayer("steve", [16]byte{}, "en_us", MainHandRight)
	p.Location = NewLocation(5, 5, 5)
	p.Location.Yaw = 90

	result := p.MoveRelative(Location{X: 10, Y: 0, Z: 0})
	if result != MoveRejectedTeleportedBack {
		t.Fatalf("expected MoveRejectedTeleportedBack, got %v", result)
	}

	id := p.TeleportRequests[0].ID
	p.TeleportRequests[0].Sent = true
	if !p.TeleportAcknowledge(id) {
		t.Fatalf("expected acknowledgement to succeed")
	}
	if p.Location.X != 5 || p.Location.Y != 5 || p.Location.Z != 5 {
		t.Fatalf("corrective teleport must leave location unchanged, got %+v", p.Location)
	}
	if p.Location.Yaw != 90 {
		t.Fatalf("corrective teleport must not reset look direction, got yaw=%v", p.Location.Yaw)
	}
}

func TestMoveAbsolutePreservesCurrentLookDirection(t *testing.T) {
	// Mirrors handlePlayPacket's SetPlayerPosition case: the wire packet
	// carries no yaw/pitch, so the caller must build the target location
	// from the player's own current look direction rather than a
	// zero-valued one.
	p := NewPlayer("steve", [16]byte{}, "en_us", MainHandRight)
	p.Location = NewLocation(0, 0, 0)
	p.Location.Yaw = 45
	p.Location.Pitch = -10

	target := Location{X: 0.1, Y: 0, Z: 0, Yaw: p.Location.Yaw, Pitch: p.Location.Pitch}
	result := p.MoveAbsolute(target)
	if result != MoveAccepted {
		t.Fatalf("expected MoveAccepted, got %v", result)
	}
	if p.Location.Yaw != 45 || p.Location.Pitch != -10 {
		t.Fatalf("look direction should survive a position-only move, got %+v", p.Location)
	}
	if p.Location.X != 0.1 {
		t.Fatalf("position should have been applied, got %+v", p.Location)
	}
}

func TestMoveRelativeExemptsCreative(t *testing.T) {
	p := NewPlayer("steve", [16]byte{}, "en_us", MainHandRight)
	p.GameMode = GameModeCreative
	result := p.MoveRelative(Location{X: 100, Y: 0, Z: 0})
	if result != MoveAccepted {
		t.Fatalf("expected MoveAccepted for creative player, got %v", result)
	}
}

func TestTeleportAcknowledgeRequiresSent(t *testing.T) {
	p := NewPlayer("steve", [16]byte{}, "en_us", MainHandRight)
	id := p.Teleport(NewLocation(10, 20, 30))

	if p.TeleportAcknowledge(id) {
		t.Fatalf("unsent teleport request should not be acknowledgeable")
	}

	p.TeleportRequests[0].Sent = true
	if !p.TeleportAcknowledge(id) {
		t.Fatalf("expected acknowledgement to succeed once sent")
	}
	if p.Location.X != 10 || p.Location.Y != 20 || p.Location.Z != 30 {
		t.Fatalf("location not applied after ack: %+v", p.Location)
	}
	if len(p.TeleportRequests) != 0 {
		t.Fatalf("expected teleport request to be drained")
	}
}

func TestTeleportAcknowledgeStaleIDIgnored(t *testing.T) {
	p := NewPlayer("steve", [16]byte{}, "en_us", MainHandRight)
	p.Teleport(NewLocation(1, 1, 1))
	p.TeleportRequests[0].Sent = true

	if p.TeleportAcknowledge(99999) {
		t.Fatalf("unrelated id should not resolve the pending request")
	}
	if len(p.TeleportRequests) != 1 {
		t.Fatalf("pending request should remain untouched")
	}
}
