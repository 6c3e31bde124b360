package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	ico "github.com/sergeymakinen/go-ico"
)

// ErrUnsupportedFormat is returned by Save for an extension it cannot encode.
var ErrUnsupportedFormat = errors.New("imageio: unsupported output format")

// maxICOSize is the largest edge an ICO directory entry can describe.
const maxICOSize = 256

// Formats lists the output extensions Save understands.
var Formats = []string{"png", "webp", "ico", "tga"}

// Save encodes img by the extension of path, creating parent directories.
// All encoders are lossless and keep the alpha channel.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !IsOutputFormat(ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if ext == "ico" {
		b := img.Bounds()
		if b.Dx() > maxICOSize || b.Dy() > maxICOSize {
			return fmt.Errorf("imageio: ico %s: %dx%d exceeds %dx%d", path, b.Dx(), b.Dy(), maxICOSize, maxICOSize)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("imageio: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	switch ext {
	case "png":
		err = png.Encode(w, img)
	case "webp":
		err = nativewebp.Encode(w, img, nil)
	case "ico":
		err = ico.Encode(w, img)
	case "tga":
		err = tga.Encode(w, img)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	return nil
}

// IsOutputFormat reports whether ext (without dot) is a Save format.
func IsOutputFormat(ext string) bool {
	for _, f := range Formats {
		if f == ext {
			return true
		}
	}
	return false
}
