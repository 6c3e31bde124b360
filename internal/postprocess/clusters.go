package postprocess

import (
	"image"

	"iconkit/internal/floodfill"
)

func visible(_, _, _, a uint8) bool { return a > 0 }

// RemoveSmallClusters clears 8-connected islands of visible pixels smaller than
// minRatio of the whole visible area, such as specks left by background removal.
// It returns a cleaned copy and the number of pixels cleared. Images with a single
// island, or minRatio <= 0, are returned unchanged.
func RemoveSmallClusters(img *image.NRGBA, minRatio float64) (*image.NRGBA, int) {
	if minRatio <= 0 {
		return img, 0
	}
	labels, sizes := floodfill.Regions(img, visible, true)
	if len(sizes) <= 1 {
		return img, 0
	}

	total := 0
	for _, n := range sizes {
		total += n
	}
	minSize := int(float64(total) * minRatio)

	b := img.Bounds()
	w := b.Dx()
	out := image.NewNRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w*4], img.Pix[y*img.Stride:])
	}

	cleared := 0
	for idx, id := range labels {
		if id < 0 || sizes[id] >= minSize {
			continue
		}
		i := (idx/w)*out.Stride + (idx%w)*4
		out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = 0, 0, 0, 0
		cleared++
	}
	return out, cleared
}
