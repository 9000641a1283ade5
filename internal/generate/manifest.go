package generate

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry lists one accepted scene in the dataset manifest.
type ManifestEntry struct {
	ImageIndex int    `json:"image_index"`
	Image      string `json:"image"`
	Scene      string `json:"scene"`
	Mask       string `json:"mask"`
	Pair       string `json:"pair"`
	Direction  string `json:"direction"`
}

// WriteManifest writes the accepted-scene manifest with 2-space indentation.
func WriteManifest(path string, entries []ManifestEntry) error {
	if entries == nil {
		entries = []ManifestEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("generate: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("generate: write manifest %s: %w", path, err)
	}
	return nil
}
