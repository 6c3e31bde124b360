package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize scales img to fit a size×size canvas, preserving aspect ratio and
// centering it. Scaling happens in premultiplied space so transparent pixels
// do not bleed their hidden RGB into the visible edge.
func Resize(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if size <= 0 {
		return img
	}
	if srcW == 0 || srcH == 0 {
		return image.NewNRGBA(image.Rect(0, 0, size, size))
	}

	newW, newH := size, size
	if srcW > srcH {
		newH = (srcH*size + srcW/2) / srcW
	} else if srcH > srcW {
		newW = (srcW*size + srcH/2) / srcH
	}
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	// image.RGBA is premultiplied; draw converts on the way in.
	premul := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
	draw.Draw(premul, premul.Bounds(), img, b.Min, draw.Src)

	offX := (size - newW) / 2
	offY := (size - newH) / 2
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, image.Rect(offX, offY, offX+newW, offY+newH), premul, premul.Bounds(), draw.Src, nil)

	// Unpremultiply alpha
	result := image.NewNRGBA(dst.Bounds())
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			si := dst.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = dst.Pix[si+3]
		}
	}

	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
