// Package pipeline runs the icon recipe: cut the border-connected dark background,
// clean antialiased fringe, drop stray islands and trim to the visible artwork.
package pipeline

import (
	"fmt"
	"image"
	"image/color"

	"iconkit/internal/config"
	"iconkit/internal/floodfill"
	"iconkit/internal/postprocess"
)

// Options selects the steps of Run.
type Options struct {
	Threshold uint8   // r,g,b <= Threshold is background; 0 skips background removal
	EdgeClean string  // config.Edge*
	Despeckle float64 // 0 = off
	Trim      bool
	TrimAlpha uint8
	Size      int          // square output edge, 0 = keep
	Flatten   *color.NRGBA // non-nil also produces Result.Flat
}

// FromConfig builds Options from a resolved Config.
func FromConfig(cfg config.Config) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	opts := Options{
		Threshold: uint8(cfg.Threshold),
		EdgeClean: cfg.EdgeClean,
		Despeckle: cfg.Despeckle,
		Trim:      !cfg.NoTrim,
		Size:      cfg.Size,
	}
	if cfg.TrimAlpha != nil {
		opts.TrimAlpha = uint8(*cfg.TrimAlpha)
	}
	if cfg.FlattenColor != "" {
		c, err := config.ParseHex(cfg.FlattenColor)
		if err != nil {
			return Options{}, err
		}
		opts.Flatten = &c
	}
	return opts, nil
}

// Stats records what each step did.
type Stats struct {
	Before       image.Point
	After        image.Point
	Removed      int // background pixels made transparent
	EdgesCleaned int
	Despeckled   int
	Trimmed      bool
	Crop         image.Rectangle
}

// Result is the processed icon and, when requested, its flattened variant.
type Result struct {
	Image *image.NRGBA
	Flat  *image.NRGBA
	Stats Stats
}

// Run processes img. img is modified in place by the background and edge steps;
// the returned image may be a new buffer.
func Run(img *image.NRGBA, opts Options) (Result, error) {
	var st Stats
	b := img.Bounds()
	st.Before = b.Size()

	if opts.Threshold > 0 {
		n, err := floodfill.RemoveBackground(img, floodfill.DarkRGB(opts.Threshold), floodfill.Corners(b))
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: background: %w", err)
		}
		st.Removed = n
	}

	switch opts.EdgeClean {
	case "", config.EdgeNone:
	case config.EdgeAntialias:
		st.EdgesCleaned = postprocess.CleanEdges(img, postprocess.EdgeAntialias)
	case config.EdgeSoft:
		st.EdgesCleaned = postprocess.CleanEdges(img, postprocess.EdgeSoft)
	case config.EdgeStrict:
		st.EdgesCleaned = postprocess.StripWhite(img, 200, 150)
	default:
		return Result{}, fmt.Errorf("pipeline: unknown edge mode %q", opts.EdgeClean)
	}

	out := img
	if opts.Despeckle > 0 {
		out, st.Despeckled = postprocess.RemoveSmallClusters(out, opts.Despeckle)
	}

	if opts.Trim {
		out, st.Crop, st.Trimmed = postprocess.Trim(out, opts.TrimAlpha)
	}

	if opts.Size > 0 {
		out = postprocess.Resize(out, opts.Size)
	}
	st.After = out.Bounds().Size()

	res := Result{Image: out, Stats: st}
	if opts.Flatten != nil {
		res.Flat = postprocess.Flatten(out, *opts.Flatten)
	}
	return res, nil
}
