package nbt

import (
	"errors"
	"reflect"
	"testing"
)

func TestDiskRoundTrip(t *testing.T) {
	root := Compound{}.
		WithEntry("name", String("bananrama")).
		WithEntry("health", Int(20)).
		WithEntry("score", Long(12345678901)).
		WithEntry("pos", List{Double(1.5), Double(64.0), Double(-20.25)}).
		WithEntry("inventory", Compound{}.WithEntry("slot0", Byte(1)))

	raw, err := EncodeDisk("root", root)
	if err != nil {
		t.Fatalf("EncodeDisk: %v", err)
	}

	name, decoded, err := DecodeDisk(raw)
	if err != nil {
		t.Fatalf("DecodeDisk: %v", err)
	}
	if name != "root" {
		t.Fatalf("name = %q", name)
	}
	if !reflect.DeepEqual(decoded, root) {
		t.Fatalf("roundtrip mismatch:\n got  %#v\n want %#v", decoded, root)
	}
}

func TestNetworkRoundTripOmitsRootName(t *testing.T) {
	root := Compound{}.WithEntry("value", Int(42))
	raw, err := EncodeNetwork(root)
	if err != nil {
		t.Fatalf("EncodeNetwork: %v", err)
	}

	decoded, err := DecodeNetwork(raw)
	if err != nil {
		t.Fatalf("DecodeNetwork: %v", err)
	}
	if !reflect.DeepEqual(decoded, root) {
		t.Fatalf("roundtrip mismatch: got %#v want %#v", decoded, root)
	}

	// A network document must be exactly: id byte, then the compound body
	// (no 2-byte name-length prefix for the root).
	if raw[0] != byte(IDCompound) {
		t.Fatalf("expected compound id as first byte, got %x", raw[0])
	}
}

func TestNestedCompoundsKeepNames(t *testing.T) {
	root := Compound{}.WithEntry("outer", Compound{}.WithEntry("inner", Byte(7)))
	raw, err := EncodeNetwork(root)
	if err != nil {
		t.Fatalf("EncodeNetwork: %v", err)
	}
	decoded, err := DecodeNetwork(raw)
	if err != nil {
		t.Fatalf("DecodeNetwork: %v", err)
	}
	inner, ok := decoded.Get("outer").(Compound)
	if !ok {
		t.Fatalf("expected nested compound, got %T", decoded.Get("outer"))
	}
	if inner.Get("inner") != Byte(7) {
		t.Fatalf("got %#v", inner.Get("inner"))
	}
}

func TestEmptyListRoundTrip(t *testing.T) {
	root := Compound{}.WithEntry("empty", List{})
	raw, err := EncodeNetwork(root)
	if err != nil {
		t.Fatalf("EncodeNetwork: %v", err)
	}
	decoded, err := DecodeNetwork(raw)
	if err != nil {
		t.Fatalf("DecodeNetwork: %v", err)
	}
	lst, ok := decoded.Get("empty").(List)
	if !ok || len(lst) != 0 {
		t.Fatalf("got %#v", decoded.Get("empty"))
	}
}

func TestEncodeRejectsMixedListTypes(t *testing.T) {
	root := Compound{}.WithEntry("bad", List{Int(1), String("two")})

	if _, err := EncodeNetwork(root); !errors.Is(err, ErrMixedListTypes) {
		t.Fatalf("EncodeNetwork: got %v, want ErrMixedListTypes", err)
	}
	if _, err := EncodeDisk("root", root); !errors.Is(err, ErrMixedListTypes) {
		t.Fatalf("EncodeDisk: got %v, want ErrMixedListTypes", err)
	}
}

func TestEncodeRejectsMixedListTypesNested(t *testing.T) {
	root := Compound{}.WithEntry("outer", Compound{}.WithEntry("bad", List{Byte(1), Short(2)}))

	if _, err := EncodeNetwork(root); !errors.Is(err, ErrMixedListTypes) {
		t.Fatalf("expected ErrMixedListTypes for a nested heterogeneous list, got %v", err)
	}
}

func TestFromJSONObjectPreservesOrderAndTypes(t *testing.T) {
	raw := []byte(`{"fixed_time": 6000, "has_skylight": true, "name": "overworld", "effects": {"fog_color": 12638463}, "list": [1, 2, 3]}`)
	compound, err := FromJSONObject(raw)
	if err != nil {
		t.Fatalf("FromJSONObject: %v", err)
	}
	if len(compound) != 5 || compound[0].Name != "fixed_time" || compound[4].Name != "list" {
		t.Fatalf("order not preserved: %#v", compound)
	}
	if compound.Get("fixed_time") != Int(6000) {
		t.Fatalf("fixed_time = %#v", compound.Get("fixed_time"))
	}
	if compound.Get("has_skylight") != Byte(1) {
		t.Fatalf("has_skylight = %#v", compound.Get("has_skylight"))
	}
	effects, ok := compound.Get("effects").(Compound)
	if !ok || effects.Get("fog_color") != Int(12638463) {
		t.Fatalf("effects = %#v", compound.Get("effects"))
	}
	lst, ok := compound.Get("list").(List)
	if !ok || len(lst) != 3 {
		t.Fatalf("list = %#v", compound.Get("list"))
	}
}

func TestFromJSONObjectRejectsMixedList(t *testing.T) {
	raw := []byte(`{"bad": [1, "two", 3]}`)
	_, err := FromJSONObject(raw)
	if err == nil {
		t.Fatalf("expected error for mixed-type list")
	}
}

func TestFromJSONObjectLargeIntBecomesLong(t *testing.T) {
	raw := []byte(`{"big": 5000000000}`)
	compound, err := FromJSONObject(raw)
	if err != nil {
		t.Fatalf("FromJSONObject: %v", err)
	}
	if _, ok := compound.Get("big").(Long); !ok {
		t.Fatalf("expected Long, got %#v", compound.Get("big"))
	}
}

func TestPackEntriesUniform(t *testing.T) {
	entries := make([]int32, 26)
	for i := range entries {
		entries[i] = 7
	}
	packed := PackEntries(entries, 15)
	if len(packed) == 0 {
		t.Fatalf("expected at least one packed long")
	}
	// 64/15 = 4 entries per long, so 26 entries need 7 longs.
	if len(packed) != 7 {
		t.Fatalf("got %d longs, want 7", len(packed))
	}
}
