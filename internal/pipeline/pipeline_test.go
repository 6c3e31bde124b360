package pipeline

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"iconkit/internal/config"
	"iconkit/internal/floodfill"
)

// iconImage is a 12x10 black canvas with a 6x4 white rounded-ish block at (3,3)
// holding a dark detail at (5,4) that must survive, plus a light fringe pixel.
func iconImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 12, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 12; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	for y := 3; y < 7; y++ {
		for x := 3; x < 9; x++ {
			img.SetNRGBA(x, y, color.NRGBA{240, 240, 240, 255})
		}
	}
	img.SetNRGBA(5, 4, color.NRGBA{5, 5, 5, 255})
	img.SetNRGBA(2, 3, color.NRGBA{220, 220, 220, 120})
	return img
}

func TestRunFullRecipe(t *testing.T) {
	opts := Options{Threshold: 30, EdgeClean: config.EdgeAntialias, Trim: true, TrimAlpha: 10}
	res, err := Run(iconImage(), opts)
	if err != nil {
		t.Fatal(err)
	}
	st := res.Stats
	// 120 pixels total, 24 artwork, 1 fringe.
	if st.Removed != 95 {
		t.Errorf("Removed = %d, want 95", st.Removed)
	}
	if st.EdgesCleaned != 1 {
		t.Errorf("EdgesCleaned = %d, want 1", st.EdgesCleaned)
	}
	if !st.Trimmed || st.Crop != image.Rect(3, 3, 9, 7) {
		t.Errorf("crop = %v trimmed=%v", st.Crop, st.Trimmed)
	}
	if st.Before != image.Pt(12, 10) || st.After != image.Pt(6, 4) {
		t.Errorf("before %v after %v", st.Before, st.After)
	}
	if c := res.Image.NRGBAAt(2, 1); c != (color.NRGBA{5, 5, 5, 255}) {
		t.Errorf("interior dark detail = %v, want kept", c)
	}
	if res.Flat != nil {
		t.Error("unexpected flattened variant")
	}
}

func TestRunFlattenAndResize(t *testing.T) {
	bg := color.NRGBA{21, 24, 38, 255}
	opts := Options{Threshold: 30, Trim: true, TrimAlpha: 10, Size: 16, Flatten: &bg}
	res, err := Run(iconImage(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Image.Bounds().Size() != image.Pt(16, 16) {
		t.Errorf("size %v", res.Image.Bounds().Size())
	}
	if res.Flat == nil {
		t.Fatal("no flattened variant")
	}
	if c := res.Flat.NRGBAAt(0, 0); c != bg {
		t.Errorf("flat corner = %v, want %v", c, bg)
	}
}

func TestRunEmptyImage(t *testing.T) {
	_, err := Run(image.NewNRGBA(image.Rect(0, 0, 0, 0)), Options{Threshold: 30})
	if !errors.Is(err, floodfill.ErrEmptyImage) {
		t.Errorf("err = %v, want ErrEmptyImage", err)
	}
}

func TestRunUnknownEdgeMode(t *testing.T) {
	if _, err := Run(iconImage(), Options{EdgeClean: "blur"}); err == nil {
		t.Error("want error")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Config{FlattenColor: "#5A6978", Despeckle: 0.02}
	cfg.Resolve(config.Flags{})
	opts, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Threshold != 30 || !opts.Trim || opts.TrimAlpha != 10 || opts.Despeckle != 0.02 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.Flatten == nil || *opts.Flatten != (color.NRGBA{0x5a, 0x69, 0x78, 255}) {
		t.Errorf("Flatten = %v", opts.Flatten)
	}

	cfg.EdgeClean = "blur"
	if _, err := FromConfig(cfg); err == nil {
		t.Error("invalid config accepted")
	}
}
