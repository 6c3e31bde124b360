package postprocess

import "image"

// OpaqueBounds returns the smallest rectangle holding every pixel with alpha > minAlpha,
// in the image's coordinate space. ok is false when no such pixel exists or the
// box would be a single row or column.
func OpaqueBounds(img *image.NRGBA, minAlpha uint8) (r image.Rectangle, ok bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			if row[x*4+3] > minAlpha {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX <= minX || maxY <= minY {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1).Add(b.Min), true
}

// Trim crops img to OpaqueBounds(img, minAlpha). The result starts at (0,0).
// When there is nothing to trim to, img is returned unchanged with ok false.
func Trim(img *image.NRGBA, minAlpha uint8) (out *image.NRGBA, box image.Rectangle, ok bool) {
	box, ok = OpaqueBounds(img, minAlpha)
	if !ok {
		return img, image.Rectangle{}, false
	}
	return Crop(img, box), box, true
}

// Crop copies r (clipped to the image) into a new image at the origin.
func Crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	r = r.Intersect(img.Bounds())
	cropW, cropH := r.Dx(), r.Dy()
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		srcOff := img.PixOffset(r.Min.X, r.Min.Y+y)
		dstOff := y * cropped.Stride
		copy(cropped.Pix[dstOff:dstOff+cropW*4], img.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped
}
