// Package analyze reports pixel statistics for an icon: alpha distribution,
// per-channel mean and deviation, and a handful of sample pixels.
package analyze

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

const (
	bucketWidth = 50
	maxSamples  = 20
)

// Sample is one visible pixel.
type Sample struct {
	X int   `json:"x" yaml:"x"`
	Y int   `json:"y" yaml:"y"`
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
	A uint8 `json:"a" yaml:"a"`
}

// Bucket counts pixels whose alpha falls in [Lo, Hi].
type Bucket struct {
	Lo    int `json:"lo" yaml:"lo"`
	Hi    int `json:"hi" yaml:"hi"`
	Count int `json:"count" yaml:"count"`
}

// Channel holds the mean and standard deviation of one channel.
type Channel struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// Report is the result of Analyze.
type Report struct {
	Path        string             `json:"path,omitempty" yaml:"path,omitempty"`
	Width       int                `json:"width" yaml:"width"`
	Height      int                `json:"height" yaml:"height"`
	Opaque      int                `json:"opaque" yaml:"opaque"`
	Transparent int                `json:"transparent" yaml:"transparent"`
	Partial     int                `json:"partial" yaml:"partial"`
	Alpha       []Bucket           `json:"alpha" yaml:"alpha"`
	Channels    map[string]Channel `json:"channels" yaml:"channels"`
	Samples     []Sample           `json:"samples" yaml:"samples"`
}

// Analyze scans img column by column. Samples are the first visible pixels in that order.
func Analyze(img *image.NRGBA) Report {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	r := Report{Width: w, Height: h}
	for lo := 0; lo <= 255; lo += bucketWidth {
		r.Alpha = append(r.Alpha, Bucket{Lo: lo, Hi: min(lo+bucketWidth-1, 255)})
	}

	n := w * h
	// Per-channel value histograms; they become the weights for gonum.
	var hist [4][256]float64

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			i := y*img.Stride + x*4
			p := img.Pix[i : i+4 : i+4]
			a := p[3]

			switch a {
			case 0:
				r.Transparent++
			case 255:
				r.Opaque++
			default:
				r.Partial++
			}
			r.Alpha[int(a)/bucketWidth].Count++

			for c := 0; c < 4; c++ {
				hist[c][p[c]]++
			}

			if a > 0 && len(r.Samples) < maxSamples {
				r.Samples = append(r.Samples, Sample{X: x, Y: y, R: p[0], G: p[1], B: p[2], A: a})
			}
		}
	}

	levels := make([]float64, 256)
	for v := range levels {
		levels[v] = float64(v)
	}

	r.Channels = make(map[string]Channel, 4)
	for c, name := range []string{"r", "g", "b", "a"} {
		if n == 0 {
			r.Channels[name] = Channel{}
			continue
		}
		mean, std := stat.PopMeanStdDev(levels, hist[c][:])
		r.Channels[name] = Channel{Mean: mean, StdDev: std}
	}
	return r
}

// Write renders r as "text", "json" or "yaml".
func (r Report) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return r.writeText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("analyze: unknown format %q", format)
	}
}

func (r Report) writeText(w io.Writer) error {
	var sb strings.Builder
	if r.Path != "" {
		fmt.Fprintf(&sb, "Icon: %s\n", r.Path)
	}
	fmt.Fprintf(&sb, "  Size: %dx%d\n", r.Width, r.Height)
	fmt.Fprintf(&sb, "  Opaque: %d  Transparent: %d  Partial: %d\n", r.Opaque, r.Transparent, r.Partial)

	sb.WriteString("\n  Alpha distribution:\n")
	for _, bk := range r.Alpha {
		fmt.Fprintf(&sb, "    %3d-%3d: %d pixels\n", bk.Lo, bk.Hi, bk.Count)
	}

	sb.WriteString("\n  Channels:\n")
	for _, name := range []string{"r", "g", "b", "a"} {
		c := r.Channels[name]
		fmt.Fprintf(&sb, "    %s: mean=%.1f stddev=%.1f\n", strings.ToUpper(name), c.Mean, c.StdDev)
	}

	fmt.Fprintf(&sb, "\n  Sample pixels (first %d):\n", len(r.Samples))
	for _, s := range r.Samples {
		fmt.Fprintf(&sb, "    (%d, %d): RGB(%d, %d, %d) Alpha=%d\n", s.X, s.Y, s.R, s.G, s.B, s.A)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
