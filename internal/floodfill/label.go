package floodfill

import "image"

// Regions labels the connected regions of pixels that satisfy match.
// With diagonal set, pixels touching at a corner are connected too.
// labels holds one entry per pixel in row-major order relative to the
// image origin: the region index into sizes, or -1 for pixels that do not match.
func Regions(img *image.NRGBA, match Predicate, diagonal bool) (labels []int, sizes []int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	nbrs := edge4
	if diagonal {
		nbrs = all8
	}

	pix := img.Pix
	stride := img.Stride
	in := func(i int) bool {
		p := pix[(i/w)*stride+(i%w)*4:]
		return match(p[0], p[1], p[2], p[3])
	}

	labels = make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}

	queue := make([]int, 0, 1024)
	for idx := range labels {
		if labels[idx] >= 0 || !in(idx) {
			continue
		}

		id := len(sizes)
		labels[idx] = id
		queue = append(queue[:0], idx)
		size := 0

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			size++

			cx, cy := curr%w, curr/w
			for _, d := range nbrs {
				nx, ny := cx+d.X, cy+d.Y
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if labels[ni] < 0 && in(ni) {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}
	return labels, sizes
}
