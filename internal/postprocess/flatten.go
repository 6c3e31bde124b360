package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Flatten composites img over a solid bg and returns a fully opaque copy.
// Platforms such as iOS reject icons with an alpha channel.
func Flatten(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	bg.A = 255

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)

	// Every pixel is opaque, so premultiplied and straight RGB agree.
	out := image.NewNRGBA(dst.Bounds())
	copy(out.Pix, dst.Pix)
	return out
}
