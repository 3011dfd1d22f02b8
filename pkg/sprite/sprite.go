// Package sprite implements rectangular color bitmaps with transparency,
// glyph fonts, and text composition for LED matrix displays.
//
// Append, Rotate, Recolor and Clone never modify their receiver. Set is the
// only mutating method and is meant for the sprite's owner while building it;
// fonts always hand out copies of their glyphs.
package sprite

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
)

var (
	// ErrInconsistentWidth is returned when rows have different lengths.
	ErrInconsistentWidth = errors.New("sprite rows have different widths")
	// ErrHeightMismatch is returned when appending a taller sprite.
	ErrHeightMismatch = errors.New("appended sprite is taller than the base sprite")
	// ErrInvalidAngle is returned for rotations that are not a multiple of 90.
	ErrInvalidAngle = errors.New("rotation must be a multiple of 90 degrees")
	// ErrInvalidSize is returned for negative dimensions.
	ErrInvalidSize = errors.New("invalid sprite size")
)

// Sprite is a height x width grid of colors, rows ordered top to bottom.
type Sprite struct {
	width  int
	height int
	pix    []ledcolor.Color
}

// Blank creates a sprite filled with c.
func Blank(height, width int, c interface{}) (*Sprite, error) {
	col, err := ledcolor.Normalize(c)
	if err != nil {
		return nil, err
	}
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return blank(height, width, col), nil
}

func blank(height, width int, c ledcolor.Color) *Sprite {
	s := &Sprite{
		width:  width,
		height: height,
		pix:    make([]ledcolor.Color, width*height),
	}
	for i := range s.pix {
		s.pix[i] = c
	}
	return s
}

// New creates a sprite from rows of colors. All rows must have the same length.
func New(rows [][]ledcolor.Color) (*Sprite, error) {
	if len(rows) == 0 {
		return &Sprite{}, nil
	}
	width := len(rows[0])
	s := &Sprite{
		width:  width,
		height: len(rows),
		pix:    make([]ledcolor.Color, 0, width*len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrInconsistentWidth, y, len(row), width)
		}
		for x, c := range row {
			col, err := ledcolor.Normalize(c)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", y, x, err)
			}
			s.pix = append(s.pix, col)
		}
	}
	return s, nil
}

// Width returns the number of columns.
func (s *Sprite) Width() int {
	return s.width
}

// Height returns the number of rows.
func (s *Sprite) Height() int {
	return s.height
}

// Empty reports whether the sprite has no pixels.
func (s *Sprite) Empty() bool {
	return s.width == 0 || s.height == 0
}

// Pixel returns the color at (x, y). ok is false outside the sprite.
func (s *Sprite) Pixel(x, y int) (c ledcolor.Color, ok bool) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return ledcolor.Transparent, false
	}
	return s.pix[y*s.width+x], true
}

// Set changes the color at (x, y). Coordinates outside the sprite are ignored.
func (s *Sprite) Set(x, y int, c interface{}) error {
	col, err := ledcolor.Normalize(c)
	if err != nil {
		return err
	}
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return nil
	}
	s.pix[y*s.width+x] = col
	return nil
}

// Rows returns a copy of the pixels, one slice per row.
func (s *Sprite) Rows() [][]ledcolor.Color {
	rows := make([][]ledcolor.Color, s.height)
	for y := range rows {
		rows[y] = append([]ledcolor.Color(nil), s.pix[y*s.width:(y+1)*s.width]...)
	}
	return rows
}

// Clone returns a deep copy.
func (s *Sprite) Clone() *Sprite {
	return &Sprite{
		width:  s.width,
		height: s.height,
		pix:    append([]ledcolor.Color(nil), s.pix...),
	}
}

// Append returns s with other placed to its right. other may be shorter than
// s, in which case it is padded with transparent rows at the bottom.
func (s *Sprite) Append(other *Sprite) (*Sprite, error) {
	if other.height > s.height {
		return nil, fmt.Errorf("%w: %d > %d", ErrHeightMismatch, other.height, s.height)
	}
	out := blank(s.height, s.width+other.width, ledcolor.Transparent)
	for y := 0; y < s.height; y++ {
		copy(out.pix[y*out.width:], s.pix[y*s.width:(y+1)*s.width])
		if y < other.height {
			copy(out.pix[y*out.width+s.width:], other.pix[y*other.width:(y+1)*other.width])
		}
	}
	return out, nil
}

// Rotate returns s rotated clockwise by angle degrees. Negative angles rotate
// counter-clockwise.
func (s *Sprite) Rotate(angle int) (*Sprite, error) {
	if angle%90 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAngle, angle)
	}
	switch ((angle % 360) + 360) % 360 {
	case 90:
		out := blank(s.width, s.height, ledcolor.Transparent)
		for y := 0; y < out.height; y++ {
			for x := 0; x < out.width; x++ {
				out.pix[y*out.width+x] = s.pix[(s.height-1-x)*s.width+y]
			}
		}
		return out, nil
	case 180:
		out := blank(s.height, s.width, ledcolor.Transparent)
		n := len(s.pix)
		for i, c := range s.pix {
			out.pix[n-1-i] = c
		}
		return out, nil
	case 270:
		out := blank(s.width, s.height, ledcolor.Transparent)
		for y := 0; y < out.height; y++ {
			for x := 0; x < out.width; x++ {
				out.pix[y*out.width+x] = s.pix[x*s.width+(s.width-1-y)]
			}
		}
		return out, nil
	}
	return s.Clone(), nil
}

// Recolor returns a copy with every opaque pixel set to c.
func (s *Sprite) Recolor(c interface{}) (*Sprite, error) {
	col, err := ledcolor.Normalize(c)
	if err != nil {
		return nil, err
	}
	out := s.Clone()
	for i, p := range out.pix {
		if p.Opaque() {
			out.pix[i] = col
		}
	}
	return out, nil
}

// ColorModel implements image.Image.
func (s *Sprite) ColorModel() color.Model {
	return ledcolor.Model
}

// Bounds implements image.Image.
func (s *Sprite) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.height)
}

// At implements image.Image.
func (s *Sprite) At(x, y int) color.Color {
	c, _ := s.Pixel(x, y)
	return c
}
