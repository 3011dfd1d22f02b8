package ledmatrix

import (
	"fmt"
	"image"
)

// rotate maps a point of an element into its unrotated frame.
func rotate(p image.Point, r Rotation) image.Point {
	const last = ElementSize - 1
	switch r {
	case Rotate90:
		return image.Point{X: p.Y, Y: last - p.X}
	case Rotate180:
		return image.Point{X: last - p.X, Y: last - p.Y}
	case Rotate270:
		return image.Point{X: last - p.Y, Y: p.X}
	}
	return p
}

// PhysicalAddress returns the bit offset of a pixel in the serial stream.
//
// local is relative to the element origin, index is the element's position
// in the chain out of count elements, and mirrored is set for elements on an
// odd row of a zig-zag chain. The stream starts with the last element of the
// chain, each element is sent column by column from the bottom row up, and
// the two pixels of every byte are swapped.
func PhysicalAddress(local image.Point, r Rotation, index, count int, mirrored bool) int {
	const last = ElementSize - 1

	p := rotate(local, r)
	if mirrored {
		p = image.Point{X: last - p.X, Y: last - p.Y}
	}

	bit := (count-1-index)*elementBits +
		p.X*ElementSize*BitsPerPixel +
		(last-p.Y)*BitsPerPixel

	if bit%8 == 0 {
		return bit + BitsPerPixel
	}
	return bit - BitsPerPixel
}

// Address returns the bit offset of logical pixel (x, y).
func (t *Topology) Address(x, y int) (int, error) {
	i, ok := t.Locate(x, y)
	if !ok {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	e := t.elements[i]
	mirrored := t.zigzag && e.ChainRow()%2 == 1
	local := image.Point{X: x - e.X, Y: y - e.Y}
	return PhysicalAddress(local, e.Rotation, i, len(t.elements), mirrored), nil
}

// Pack converts the frame buffer into the byte layout of the serial bus.
// Bit offsets are MSB first; transparent cells are sent as Off.
func Pack(fb *FrameBuffer) []byte {
	t := fb.topology
	buf := make([]byte, t.FrameBytes())
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			bit, err := t.Address(x, y)
			if err != nil {
				continue
			}
			c := fb.cells[y*t.width+x]
			if !c.Opaque() {
				continue
			}
			if bit%8 == 0 {
				buf[bit/8] |= byte(c) << 4
			} else {
				buf[bit/8] |= byte(c)
			}
		}
	}
	return buf
}
