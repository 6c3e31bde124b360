package postprocess

import (
	"image"
	"image/color"

	"iconkit/internal/floodfill"
)

// Recolor replaces every pixel matching match with c, in place, and returns the
// number of pixels replaced. Unlike a flood fill it does not care about connectivity.
func Recolor(img *image.NRGBA, match floodfill.Predicate, c color.NRGBA) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			p := img.Pix[i : i+4 : i+4]
			if !match(p[0], p[1], p[2], p[3]) {
				continue
			}
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
			n++
		}
	}
	return n
}

// RecolorConnected replaces only the matching pixels reachable from seeds,
// leaving same-colored pixels inside the artwork alone.
func RecolorConnected(img *image.NRGBA, match floodfill.Predicate, seeds []image.Point, c color.NRGBA) (int, error) {
	f, err := floodfill.NewFiller(img)
	if err != nil {
		return 0, err
	}
	return f.Walk(match, seeds, func(p []uint8) {
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	})
}
