package assets

import "testing"

func TestLoadAllReturnsNineRegistriesInManifestOrder(t *testing.T) {
	registries, err := LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(registries) != 9 {
		t.Fatalf("expected 9 registries, got %d", len(registries))
	}
	if registries[0].ID != "minecraft:dimension_type" {
		t.Fatalf("expected dimension_type first, got %s", registries[0].ID)
	}
	for _, reg := range registries {
		if len(reg.Entries) == 0 {
			t.Fatalf("registry %s has no entries", reg.ID)
		}
		for _, e := range reg.Entries {
			if e.ID == "" {
				t.Fatalf("registry %s has an entry with an empty id", reg.ID)
			}
			if e.Data == nil {
				t.Fatalf("registry %s entry %s has nil data", reg.ID, e.ID)
			}
		}
	}
}
