package floodfill

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrEmptyImage is returned for an image with zero width or height.
	ErrEmptyImage = errors.New("floodfill: empty image")
	// ErrOutOfBounds is returned when a seed lies outside the image.
	ErrOutOfBounds = errors.New("floodfill: seed out of bounds")
)

// Neighbour offsets: edge4 shares a side, all8 also the corners.
var (
	edge4 = []image.Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	all8  = []image.Point{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// Predicate reports whether a pixel with the given channel values is background.
type Predicate func(r, g, b, a uint8) bool

// Filler clears 4-connected background regions of one image.
// The visited grid lives as long as the Filler, so a pixel is tested at most once
// across all calls to Fill on the same Filler.
type Filler struct {
	img     *image.NRGBA
	w, h    int
	visited []bool
}

// NewFiller allocates the visited grid for img.
func NewFiller(img *image.NRGBA) (*Filler, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	return &Filler{
		img:     img,
		w:       w,
		h:       h,
		visited: make([]bool, w*h),
	}, nil
}

// Fill makes transparent every pixel reachable from seeds through pixels that
// satisfy isBackground. Seeds are in image coordinates.
// It returns the number of pixels whose alpha was changed to 0.
func (f *Filler) Fill(isBackground Predicate, seeds []image.Point) (int, error) {
	removed := 0
	_, err := f.Walk(isBackground, seeds, func(p []uint8) {
		if p[3] != 0 {
			p[3] = 0
			removed++
		}
	})
	return removed, err
}

// Walk visits, breadth first, every pixel reachable from seeds through pixels
// that satisfy match, calling visit with the pixel's four RGBA bytes.
// A pixel failing match is marked visited but does not extend the region.
// match always sees the pixel before visit runs on it. Walk returns the number
// of pixels visited. All seeds are checked before any pixel is touched.
func (f *Filler) Walk(match Predicate, seeds []image.Point, visit func(p []uint8)) (int, error) {
	b := f.img.Bounds()
	for _, s := range seeds {
		if !s.In(b) {
			return 0, fmt.Errorf("%w: (%d,%d) not in %v", ErrOutOfBounds, s.X, s.Y, b)
		}
	}

	pix := f.img.Pix
	stride := f.img.Stride
	w, h := f.w, f.h

	queue := make([]int, 0, 1024)
	n := 0
	for _, s := range seeds {
		idx := (s.Y-b.Min.Y)*w + (s.X - b.Min.X)
		if f.visited[idx] {
			continue
		}

		f.visited[idx] = true
		queue = queue[:0]
		queue = append(queue, idx)

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]

			cx := curr % w
			cy := curr / w
			i := cy*stride + cx*4
			p := pix[i : i+4 : i+4]

			if !match(p[0], p[1], p[2], p[3]) {
				continue
			}
			visit(p)
			n++

			for _, d := range edge4 {
				nx := cx + d.X
				ny := cy + d.Y
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if !f.visited[ni] {
					f.visited[ni] = true
					queue = append(queue, ni)
				}
			}
		}
	}

	return n, nil
}

// RemoveBackground runs a single fill with a fresh visited grid.
func RemoveBackground(img *image.NRGBA, isBackground Predicate, seeds []image.Point) (int, error) {
	f, err := NewFiller(img)
	if err != nil {
		return 0, err
	}
	return f.Fill(isBackground, seeds)
}

// Corners returns the unique corner points of r, top-left first.
func Corners(r image.Rectangle) []image.Point {
	if r.Empty() {
		return nil
	}
	pts := []image.Point{
		{r.Min.X, r.Min.Y},
		{r.Max.X - 1, r.Min.Y},
		{r.Min.X, r.Max.Y - 1},
		{r.Max.X - 1, r.Max.Y - 1},
	}
	out := pts[:0]
	for _, p := range pts {
		dup := false
		for _, q := range out {
			if p == q {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}
