package registry

import "testing"

func TestBuildRegistryDataPacketsProducesNineNonEmptyPackets(t *testing.T) {
	packets, err := BuildRegistryDataPackets()
	if err != nil {
		t.Fatalf("BuildRegistryDataPackets: %v", err)
	}
	if len(packets) != 9 {
		t.Fatalf("expected 9 packets, got %d", len(packets))
	}
	for _, p := range packets {
		if len(p.Entries) == 0 {
			t.Fatalf("registry %s has no entries", p.RegistryID)
		}
		for _, e := range p.Entries {
			if len(e.Data) == 0 {
				t.Fatalf("registry %s entry %s has no encoded data", p.RegistryID, e.ID)
			}
		}
	}
}
