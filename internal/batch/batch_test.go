package batch

import (
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"iconkit/internal/imageio"
	"iconkit/internal/pipeline"
)

func writeIcon(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.NRGBA{0, 0, 0, 255}
			if x >= 2 && x < 6 && y >= 2 && y < 6 {
				c = color.NRGBA{30, 144, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	if err := imageio.Save(path, img); err != nil {
		t.Fatal(err)
	}
}

func testConfig(in string) Config {
	bg := color.NRGBA{90, 105, 120, 255}
	return Config{
		InputDir:  in,
		OutputDir: filepath.Join(in, "processed"),
		Formats:   []string{"png", "webp"},
		Options:   pipeline.Options{Threshold: 30, Trim: true, TrimAlpha: 10, Flatten: &bg},
		Workers:   2,
	}
}

func TestRunWritesOutputs(t *testing.T) {
	in := t.TempDir()
	writeIcon(t, filepath.Join(in, "app.png"))
	writeIcon(t, filepath.Join(in, "sub", "splash.png"))
	if err := os.WriteFile(filepath.Join(in, "broken.png"), []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(in)
	jobs := Jobs(cfg)
	if len(jobs) != 3 {
		t.Fatalf("%d jobs, want 3", len(jobs))
	}

	results := Run(cfg, jobs)
	ok, failed := 0, 0
	for _, r := range results {
		if r.Success {
			ok++
			if len(r.Outputs) != 3 {
				t.Errorf("%s: outputs %v", r.Name, r.Outputs)
			}
			if r.Stats.After != image.Pt(4, 4) || r.Stats.Removed != 48 {
				t.Errorf("%s: stats %+v", r.Name, r.Stats)
			}
		} else {
			failed++
		}
	}
	if ok != 2 || failed != 1 {
		t.Errorf("ok=%d failed=%d", ok, failed)
	}

	got, err := imageio.Load(filepath.Join(cfg.OutputDir, "sub", "splash.png"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Size() != image.Pt(4, 4) {
		t.Errorf("trimmed size %v", got.Bounds().Size())
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "app_ios.png")); err != nil {
		t.Errorf("flattened variant missing: %v", err)
	}

	// Second run must not pick up its own outputs.
	if n := len(Jobs(cfg)); n != 3 {
		t.Errorf("rescan found %d jobs, want 3", n)
	}
}

func TestProcessOneShrinksForICO(t *testing.T) {
	in := t.TempDir()
	src := filepath.Join(in, "big.png")
	img := image.NewNRGBA(image.Rect(0, 0, 300, 300))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i-1] = 200
		img.Pix[i] = 255
	}
	if err := imageio.Save(src, img); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(in)
	cfg.Formats = []string{"ico"}
	cfg.Options.Flatten = nil

	r := ProcessOne(cfg, Job{Source: src, Name: "big"})
	if !r.Success {
		t.Fatalf("failed: %s", r.Error)
	}
	if len(r.Outputs) != 1 || filepath.Ext(r.Outputs[0]) != ".ico" {
		t.Errorf("outputs %v", r.Outputs)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	results := []Result{
		{
			Source:  filepath.Join(dir, "app.png"),
			Outputs: []string{filepath.Join(dir, "out", "app.png")},
			Stats:   pipeline.Stats{Before: image.Pt(8, 8), After: image.Pt(4, 4), Removed: 48},
			Success: true,
		},
		{Source: filepath.Join(dir, "bad.png"), Error: "decode failed"},
	}
	path := filepath.Join(dir, "manifest.json")
	if err := WriteManifest(path, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Outputs[0] != "out/app.png" || entries[0].Removed != 48 {
		t.Errorf("entries %+v", entries)
	}
	if entries[1].Error != "decode failed" {
		t.Errorf("error entry %+v", entries[1])
	}

	if err := WriteManifest(filepath.Join(dir, "manifest.yaml"), results); err != nil {
		t.Fatal(err)
	}
}
