package postprocess

import (
	"image"

	"iconkit/internal/floodfill"
)

// EdgeRule selects semi-transparent fringe pixels left behind by antialiasing.
// A pixel with 0 < alpha < MaxAlpha is cleared if its red, green and blue are all
// above BrightMin, or if its alpha is below FaintAlpha regardless of color.
type EdgeRule struct {
	MaxAlpha   uint8
	BrightMin  uint8
	FaintAlpha uint8
	ZeroRGB    bool // clear to (0,0,0,0) instead of keeping RGB
}

var (
	// EdgeAntialias removes light halos after a dark background was cut out.
	EdgeAntialias = EdgeRule{MaxAlpha: 240, BrightMin: 100, FaintAlpha: 50, ZeroRGB: true}
	// EdgeSoft only removes near-white fringe and keeps RGB under cleared pixels.
	EdgeSoft = EdgeRule{MaxAlpha: 250, BrightMin: 200, FaintAlpha: 50}
)

func alphaBelow(limit uint8) floodfill.Predicate {
	return func(_, _, _, a uint8) bool { return a < limit }
}

func alphaIn(lo, hi uint8) floodfill.Predicate {
	return func(_, _, _, a uint8) bool { return a >= lo && a < hi }
}

// matcher selects the pixels rule clears.
func (rule EdgeRule) matcher() floodfill.Predicate {
	return floodfill.And(
		alphaIn(1, rule.MaxAlpha),
		floodfill.Or(floodfill.BrightRGB(rule.BrightMin), alphaBelow(rule.FaintAlpha)),
	)
}

// CleanEdges applies rule to img in place and returns the number of pixels changed.
func CleanEdges(img *image.NRGBA, rule EdgeRule) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	match := rule.matcher()

	cleaned := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			p := img.Pix[i : i+4 : i+4]
			if !match(p[0], p[1], p[2], p[3]) {
				continue
			}
			if rule.ZeroRGB {
				p[0], p[1], p[2] = 0, 0, 0
			}
			p[3] = 0
			cleaned++
		}
	}
	return cleaned
}

// StripWhite is the strict cleanup: any pixel with alpha < minAlpha, or with
// red, green and blue all above brightMin, becomes (0,0,0,0).
// It returns the number of pixels changed.
func StripWhite(img *image.NRGBA, minAlpha, brightMin uint8) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	match := floodfill.Or(alphaBelow(minAlpha), floodfill.BrightRGB(brightMin))

	cleaned := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			p := img.Pix[i : i+4 : i+4]
			if !match(p[0], p[1], p[2], p[3]) {
				continue
			}
			if p[0]|p[1]|p[2]|p[3] == 0 {
				continue
			}
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
			cleaned++
		}
	}
	return cleaned
}
