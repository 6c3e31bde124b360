package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestEntry represents one icon in the output manifest.
type ManifestEntry struct {
	Source       string   `json:"source" yaml:"source"`
	Outputs      []string `json:"outputs" yaml:"outputs"`
	Width        int      `json:"width" yaml:"width"`
	Height       int      `json:"height" yaml:"height"`
	OrigWidth    int      `json:"orig_width" yaml:"orig_width"`
	OrigHeight   int      `json:"orig_height" yaml:"orig_height"`
	Removed      int      `json:"removed" yaml:"removed"`
	EdgesCleaned int      `json:"edges_cleaned" yaml:"edges_cleaned"`
	Despeckled   int      `json:"despeckled,omitempty" yaml:"despeckled,omitempty"`
	Error        string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// WriteManifest writes the results to path. Paths are stored relative to the
// manifest's directory. A .yaml or .yml extension selects YAML, anything else JSON.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	rel := func(p string) string {
		if r, err := filepath.Rel(dir, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Source:       rel(r.Source),
			Width:        r.Stats.After.X,
			Height:       r.Stats.After.Y,
			OrigWidth:    r.Stats.Before.X,
			OrigHeight:   r.Stats.Before.Y,
			Removed:      r.Stats.Removed,
			EdgesCleaned: r.Stats.EdgesCleaned,
			Despeckled:   r.Stats.Despeckled,
			Error:        r.Error,
		}
		for _, o := range r.Outputs {
			e.Outputs = append(e.Outputs, rel(o))
		}
		entries[i] = e
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(entries)
	default:
		data, err = json.MarshalIndent(entries, "", "  ")
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
