package server

import "testing"

func TestLoopbackPluginBusForwardsWithoutError(t *testing.T) {
	bus, err := newLoopbackPluginBus()
	if err != nil {
		t.Fatalf("newLoopbackPluginBus: %v", err)
	}
	defer bus.Close()

	channel := overworld // any Identifier works as a channel key for this test
	if err := bus.Forward(channel, []byte("hello")); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	// A second message on the same channel should reuse the already-open
	// stream rather than erroring trying to open another.
	if err := bus.Forward(channel, []byte("again")); err != nil {
		t.Fatalf("second Forward: %v", err)
	}
}
