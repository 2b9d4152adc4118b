package text

import (
	"testing"

	"orewire-server/internal/nbt"
)

func TestCompoundCarriesTextColorAndBold(t *testing.T) {
	c := New("disconnected").WithColor(ColorRed).WithBold(true)
	compound := c.Compound()

	text := compound.Get("text")
	if text != nbt.String("disconnected") {
		t.Fatalf("unexpected text entry: %#v", text)
	}

	color := compound.Get("color")
	if color != nbt.String(ColorRed) {
		t.Fatalf("unexpected color entry: %#v", color)
	}

	bold := compound.Get("bold")
	if bold != nbt.Byte(1) {
		t.Fatalf("unexpected bold entry: %#v", bold)
	}
}

func TestWithExtraNestsChildren(t *testing.T) {
	c := New("prefix ").WithExtra(New("child").WithColor(ColorGold))
	compound := c.Compound()

	extra := compound.Get("extra")
	if extra == nil {
		t.Fatalf("expected an extra entry")
	}
	list, ok := extra.(nbt.List)
	if !ok || len(list) != 1 {
		t.Fatalf("expected a one-element list, got %#v", extra)
	}
	child, ok := list[0].(nbt.Compound)
	if !ok {
		t.Fatalf("expected child to be a compound, got %#v", list[0])
	}
	if name := child.Get("text"); name != nbt.String("child") {
		t.Fatalf("unexpected child text: %#v", name)
	}
}

func TestPlainAndColoredProduceNonEmptyNetworkBytes(t *testing.T) {
	if len(Plain("hello")) == 0 {
		t.Fatalf("expected non-empty bytes from Plain")
	}
	if len(Colored("hello", ColorRed)) == 0 {
		t.Fatalf("expected non-empty bytes from Colored")
	}
}
