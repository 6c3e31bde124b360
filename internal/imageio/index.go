package imageio

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// inputRank orders decodable extensions; lower wins when two files share a stem.
// Formats that carry alpha come first.
var inputRank = map[string]int{
	".png":  0,
	".webp": 1,
	".tga":  2,
	".tiff": 3,
	".tif":  3,
	".ico":  4,
	".gif":  5,
	".bmp":  6,
	".jpg":  7,
	".jpeg": 7,
}

// IsInput reports whether path has an extension Load can decode.
func IsInput(path string) bool {
	_, ok := inputRank[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Index maps lowercase relative stems to source image paths.
type Index struct {
	root    string
	entries map[string]string // rel stem (lower, slash-separated) → full path
}

// BuildIndex walks root for decodable images, skipping any directory in skip.
// When a stem exists in several formats, the one with the best alpha support wins.
func BuildIndex(root string, skip ...string) *Index {
	idx := &Index{root: root, entries: make(map[string]string)}

	skipAbs := make(map[string]bool, len(skip))
	for _, s := range skip {
		if a, err := filepath.Abs(s); err == nil {
			skipAbs[a] = true
		}
	}

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if a, err := filepath.Abs(path); err == nil && skipAbs[a] {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsInput(path) {
			return nil
		}
		stem := idx.stem(path)

		existing, exists := idx.entries[stem]
		if !exists || rank(path) < rank(existing) {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// stem returns the lowercase slash-separated path of p relative to the index root,
// without extension.
func (idx *Index) stem(p string) string {
	rel, err := filepath.Rel(idx.root, p)
	if err != nil {
		rel = filepath.Base(p)
	}
	rel = filepath.ToSlash(rel)
	return strings.ToLower(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

// Rel returns the relative, extension-less output name for a source path,
// preserving the original case.
func (idx *Index) Rel(p string) string {
	rel, err := filepath.Rel(idx.root, p)
	if err != nil {
		rel = filepath.Base(p)
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}

// Paths returns the indexed source paths in sorted order.
func (idx *Index) Paths() []string {
	out := make([]string, 0, len(idx.entries))
	for _, p := range idx.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func rank(path string) int {
	return inputRank[strings.ToLower(filepath.Ext(path))]
}
