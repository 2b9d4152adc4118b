package registry

import (
	"fmt"

	"orewire-server/internal/codec"
	"orewire-server/internal/nbt"
	"orewire-server/internal/registry/assets"
)

// BuildRegistryDataPackets loads the embedded vanilla registries and
// renders each one as a RegistryData packet ready to send during
// Configuration, in the order the client expects to receive them.
func BuildRegistryDataPackets() ([]*RegistryData, error) {
	registries, err := assets.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load registry assets: %w", err)
	}

	packets := make([]*RegistryData, 0, len(registries))
	for _, reg := range registries {
		packet := &RegistryData{RegistryID: codec.ParseIdentifier(reg.ID)}
		for _, entry := range reg.Entries {
			data, err := nbt.EncodeNetwork(entry.Data)
			if err != nil {
				return nil, fmt.Errorf("encode registry entry %s/%s: %w", reg.ID, entry.ID, err)
			}
			packet.Entries = append(packet.Entries, RegistryEntry{
				ID:   codec.ParseIdentifier(entry.ID),
				Data: data,
			})
		}
		packets = append(packets, packet)
	}
	return packets, nil
}
