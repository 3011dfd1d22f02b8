package ledmatrix

import (
	"image"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
)

func sign(n int) int {
	if n >= 0 {
		return 1
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Line draws a line from a to b, one point per step along the longer axis.
// Points that fall off the frame are skipped.
func (fb *FrameBuffer) Line(a, b image.Point, c interface{}) error {
	col, err := ledcolor.Normalize(c)
	if err != nil {
		return err
	}
	fb.line(a, b, col)
	return nil
}

func (fb *FrameBuffer) line(a, b image.Point, c ledcolor.Color) {
	dx := a.X - b.X
	dy := a.Y - b.Y
	step := sign(dx) * sign(dy)
	width := abs(dx) + 1
	height := abs(dy) + 1

	if width > height {
		start := b
		if dx < 0 {
			start = a
		}
		for off := 0; off < width; off++ {
			fb.plot(start.X+off, start.Y+step*(off*height/width), c)
		}
		return
	}

	start := b
	if dy < 0 {
		start = a
	}
	for off := 0; off < height; off++ {
		fb.plot(start.X+step*(off*width/height), start.Y+off, c)
	}
}

// Rect draws a rectangle covering size pixels from origin, either the outline
// or, with fill set, every cell. Cells off the frame are skipped.
func (fb *FrameBuffer) Rect(origin, size image.Point, c interface{}, fill bool) error {
	col, err := ledcolor.Normalize(c)
	if err != nil {
		return err
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil
	}

	x0, y0 := origin.X, origin.Y
	x1, y1 := origin.X+size.X-1, origin.Y+size.Y-1

	if fill {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				fb.plot(x, y, col)
			}
		}
		return nil
	}

	fb.line(image.Pt(x0, y0), image.Pt(x0, y1), col)
	fb.line(image.Pt(x0, y1), image.Pt(x1, y1), col)
	fb.line(image.Pt(x1, y1), image.Pt(x1, y0), col)
	fb.line(image.Pt(x1, y0), image.Pt(x0, y0), col)
	return nil
}
