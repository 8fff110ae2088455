package channel

import (
	"encoding/json"
	"fmt"
	"os"
)

// The pipeline never reads or writes channel persistence itself; these
// functions are the boundary where the settings collaborator hands over
// fully-validated Channel values. The persisted artifact format is JSON
// by contract.

// FromJSON decodes a channel list, applying defaults for absent fields
// and validating every channel before it is handed to a pipeline.
func FromJSON(data []byte) ([]Channel, error) {
	defaults := func() Channel {
		return Channel{
			Export:   DefaultExportConfig(),
			Effects:  DefaultEffectConfig(),
			Overlays: DefaultOverlayConfig(),
		}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Also accept {"channels": [...]} exports.
		var wrapped struct {
			Channels []json.RawMessage `json:"channels"`
		}
		if err2 := json.Unmarshal(data, &wrapped); err2 != nil || wrapped.Channels == nil {
			return nil, fmt.Errorf("decoding channels: %w", err)
		}
		raw = wrapped.Channels
	}

	channels := make([]Channel, 0, len(raw))
	for i, msg := range raw {
		ch := defaults()
		if err := json.Unmarshal(msg, &ch); err != nil {
			return nil, fmt.Errorf("decoding channel %d: %w", i, err)
		}
		ch.Validate()
		channels = append(channels, ch)
	}
	return channels, nil
}

// LoadFile reads and decodes a channels file. A missing file yields a
// single default channel rather than an error.
func LoadFile(path string) ([]Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Channel{NewChannel("default")}, nil
		}
		return nil, err
	}
	return FromJSON(data)
}
