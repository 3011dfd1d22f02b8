package ledmatrix

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
)

// FrameBuffer is the logical pixel grid spanning every element of a
// topology. It is not safe for concurrent use.
type FrameBuffer struct {
	topology *Topology
	// cells is row-major, Height rows of Width colors.
	cells []ledcolor.Color
}

// NewFrameBuffer creates an erased frame buffer sized to t.
func NewFrameBuffer(t *Topology) *FrameBuffer {
	fb := &FrameBuffer{
		topology: t,
		cells:    make([]ledcolor.Color, t.width*t.height),
	}
	fb.Erase()
	return fb
}

// Topology returns the topology the buffer was created for.
func (fb *FrameBuffer) Topology() *Topology {
	return fb.topology
}

// Width returns the frame width in pixels.
func (fb *FrameBuffer) Width() int {
	return fb.topology.width
}

// Height returns the frame height in pixels.
func (fb *FrameBuffer) Height() int {
	return fb.topology.height
}

// Erase sets every cell to transparent.
func (fb *FrameBuffer) Erase() {
	for i := range fb.cells {
		fb.cells[i] = ledcolor.Transparent
	}
}

// Fill sets every cell to c.
func (fb *FrameBuffer) Fill(c interface{}) error {
	col, err := ledcolor.Normalize(c)
	if err != nil {
		return err
	}
	for i := range fb.cells {
		fb.cells[i] = col
	}
	return nil
}

// Point sets (x, y) to c. Transparent is a legal value. Coordinates that no
// element covers are reported with ErrOutOfBounds.
func (fb *FrameBuffer) Point(x, y int, c interface{}) error {
	col, err := ledcolor.Normalize(c)
	if err != nil {
		return err
	}
	if !fb.topology.Contains(x, y) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	fb.cells[y*fb.topology.width+x] = col
	return nil
}

// Get returns the color at (x, y).
func (fb *FrameBuffer) Get(x, y int) (ledcolor.Color, error) {
	if !fb.topology.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return fb.cells[y*fb.topology.width+x], nil
}

// plot writes an already normalized color, skipping cells off the frame.
func (fb *FrameBuffer) plot(x, y int, c ledcolor.Color) {
	if fb.topology.Contains(x, y) {
		fb.cells[y*fb.topology.width+x] = c
	}
}

// Snapshot returns a copy of the grid, one slice per row.
func (fb *FrameBuffer) Snapshot() [][]ledcolor.Color {
	w := fb.topology.width
	rows := make([][]ledcolor.Color, fb.topology.height)
	for y := range rows {
		rows[y] = append([]ledcolor.Color(nil), fb.cells[y*w:(y+1)*w]...)
	}
	return rows
}

// ColorModel implements image.Image.
func (fb *FrameBuffer) ColorModel() color.Model {
	return ledcolor.Model
}

// Bounds implements image.Image.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.topology.width, fb.topology.height)
}

// At implements image.Image.
func (fb *FrameBuffer) At(x, y int) color.Color {
	c, err := fb.Get(x, y)
	if err != nil {
		return ledcolor.Transparent
	}
	return c
}

// Set implements draw.Image. Cells off the frame are skipped.
func (fb *FrameBuffer) Set(x, y int, c color.Color) {
	fb.plot(x, y, ledcolor.Model.Convert(c).(ledcolor.Color))
}
