// Package assets embeds the vanilla registry definitions this server
// ships during Configuration: a manifest naming each registry and the
// JSON file backing it, converted to network-mode NBT on demand via
// internal/nbt's JSON bridge.
package assets

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"orewire-server/internal/nbt"
)

//go:embed manifest.yaml *.json
var files embed.FS

// ManifestEntry names one registry and the JSON file holding its
// entries, keyed by fully-qualified identifier.
type ManifestEntry struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

type manifest struct {
	Registries []ManifestEntry `yaml:"registries"`
}

// Entry is one decoded registry entry: its identifier and its contents
// rendered as an NBT compound.
type Entry struct {
	ID   string
	Data nbt.Compound
}

// Registry is one fully loaded registry: its id and every entry within
// it, in the JSON file's declared order.
type Registry struct {
	ID      string
	Entries []Entry
}

// LoadAll reads the manifest and every registry file it names, returning
// them in manifest order.
func LoadAll() ([]Registry, error) {
	raw, err := files.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	out := make([]Registry, 0, len(m.Registries))
	for _, reg := range m.Registries {
		loaded, err := load(reg)
		if err != nil {
			return nil, fmt.Errorf("load registry %s: %w", reg.ID, err)
		}
		out = append(out, loaded)
	}
	return out, nil
}

func load(reg ManifestEntry) (Registry, error) {
	raw, err := files.ReadFile(reg.File)
	if err != nil {
		return Registry{}, fmt.Errorf("read %s: %w", reg.File, err)
	}

	object, err := nbt.FromJSONObject(raw)
	if err != nil {
		return Registry{}, fmt.Errorf("decode %s: %w", reg.File, err)
	}

	result := Registry{ID: reg.ID, Entries: make([]Entry, 0, len(object))}
	for _, field := range object {
		compound, ok := field.Tag.(nbt.Compound)
		if !ok {
			return Registry{}, fmt.Errorf("%s: entry %s is not an object", reg.File, field.Name)
		}
		result.Entries = append(result.Entries, Entry{ID: field.Name, Data: compound})
	}
	return result, nil
}
