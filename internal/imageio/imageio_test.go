package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 30), uint8(y * 40), 77, uint8(x * y * 6)})
		}
	}
	return img
}

func TestSaveLoadPNGKeepsAlpha(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "icon.png")
	src := testImage()
	if err := Save(path, src); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds %v, want %v", got.Bounds(), src.Bounds())
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			want := src.NRGBAAt(x, y)
			// PNG stores fully transparent pixels losslessly in NRGBA mode.
			if g := got.NRGBAAt(x, y); g != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, g, want)
			}
		}
	}
}

// opaqueImage has no transparency so every format can hold it losslessly.
func opaqueImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 30), uint8(y * 40), 77, 255})
		}
	}
	return img
}

// alphaImage has partial alpha but no fully transparent pixels.
func alphaImage() *image.NRGBA {
	img := opaqueImage()
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Pix[y*img.Stride+x*4+3] = uint8(10 + x*y*6)
		}
	}
	return img
}

func writeWith(t *testing.T, path string, img image.Image, encode func(io.Writer, image.Image) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEveryInputFormat(t *testing.T) {
	tests := []struct {
		name string
		src  *image.NRGBA
		save func(t *testing.T, path string, img *image.NRGBA)
	}{
		{"a.png", alphaImage(), nil},
		{"a.webp", alphaImage(), nil},
		{"a.tga", alphaImage(), nil},
		{"b.png", opaqueImage(), nil},
		{"b.webp", opaqueImage(), nil},
		{"b.tga", opaqueImage(), nil},
		{"b.ico", opaqueImage(), nil},
		{"b.bmp", opaqueImage(), func(t *testing.T, path string, img *image.NRGBA) {
			writeWith(t, path, img, bmp.Encode)
		}},
		{"C.PNG", opaqueImage(), func(t *testing.T, path string, img *image.NRGBA) {
			writeWith(t, path, img, png.Encode)
		}},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if tt.save != nil {
				tt.save(t, path, tt.src)
			} else if err := Save(path, tt.src); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got.Bounds() != tt.src.Bounds() {
				t.Fatalf("bounds %v, want %v", got.Bounds(), tt.src.Bounds())
			}
			for y := 0; y < 6; y++ {
				for x := 0; x < 8; x++ {
					if g, want := got.NRGBAAt(x, y), tt.src.NRGBAAt(x, y); g != want {
						t.Fatalf("(%d,%d) = %v, want %v", x, y, g, want)
					}
				}
			}
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("want error for .txt")
	}
}

func TestSaveWebPAndICO(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.webp", "a.ico"} {
		path := filepath.Join(dir, name)
		if err := Save(path, testImage()); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Fatalf("%s: not written (%v)", name, err)
		}
	}
}

func TestSaveRejectsUnknownAndOversizedICO(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "a.jpg"), testImage()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("jpg: err = %v, want ErrUnsupportedFormat", err)
	}
	big := image.NewNRGBA(image.Rect(0, 0, 300, 10))
	if err := Save(filepath.Join(dir, "big.ico"), big); err == nil {
		t.Error("oversized ico: want error")
	}
}

func TestToNRGBARebasesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 8))
	src.Set(5, 5, color.RGBA{10, 20, 30, 255})
	got := ToNRGBA(src)
	if got.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("bounds %v", got.Bounds())
	}
	if c := got.NRGBAAt(0, 0); c != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel = %v", c)
	}
}

func TestBuildIndexPrefersAlphaFormats(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	files := []string{"app.jpg", "app.png", "sub/logo.bmp", "notes.txt", "out/app.png"}
	for _, f := range files {
		p := filepath.Join(dir, f)
		os.MkdirAll(filepath.Dir(p), 0755)
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	idx := BuildIndex(dir, out)
	paths := idx.Paths()
	if len(paths) != 2 {
		t.Fatalf("indexed %v, want 2 paths", paths)
	}
	if filepath.Base(paths[0]) != "app.png" {
		t.Errorf("paths[0] = %s, want app.png", paths[0])
	}
	if rel := idx.Rel(paths[1]); rel != filepath.Join("sub", "logo") {
		t.Errorf("Rel = %s", rel)
	}
}
