package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry records one generated image in the output manifest.
type ManifestEntry struct {
	Identity string `json:"identity"`
	Owner    string `json:"owner,omitempty"`
	Image    string `json:"image"`
}

// WriteManifest writes manifest.json to the output directory, listing every
// successfully rendered record.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Identity: r.Identity,
			Owner:    r.Owner,
			Image:    filepath.Base(r.File),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
