// Package ledcolor implements the 4 bit color model of the LED matrix
// elements plus a transparent sentinel.
//
// Every API that accepts a color from outside goes through Normalize, which is
// the only place colors are validated.
package ledcolor

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

// Color is a hardware color in [Off, Max] or Transparent.
type Color uint8

const (
	// Off turns the LED off.
	Off Color = 0x0
	// Max is the brightest color.
	Max Color = 0xF
	// Transparent means "do not write through". It never reaches the hardware.
	Transparent Color = 0x10
)

// ErrInvalidColor is returned for any value outside the color model.
var ErrInvalidColor = errors.New("invalid color")

// Opaque reports whether c is a hardware color.
func (c Color) Opaque() bool {
	return c <= Max
}

// RGBA implements color.Color as a 4 bit gray level.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	if !c.Opaque() {
		return 0, 0, 0, 0
	}
	i := 4369 * uint32(c)
	return i, i, i, 0xffff
}

func (c Color) String() string {
	if c == Transparent {
		return "-"
	}
	if c > Transparent {
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
	return strconv.FormatUint(uint64(c), 16)
}

// Model converts any color.Color to a Color. Colors with less than half
// alpha become Transparent, the rest are quantized by luminance.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if l, ok := c.(Color); ok {
		return l
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return Transparent
	}
	// Same weights as color.GrayModel.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return Color(y >> 12)
}

// Validate reports whether v is an acceptable color: an integer 0-16 (16
// being transparent) or a single symbol '0'-'F' or '-'.
func Validate(v interface{}) bool {
	_, err := Normalize(v)
	return err == nil
}

// Normalize converts v to its canonical Color.
func Normalize(v interface{}) (Color, error) {
	switch t := v.(type) {
	case Color:
		return fromInt(int64(t), v)
	case int:
		return fromInt(int64(t), v)
	case int8:
		return fromInt(int64(t), v)
	case int16:
		return fromInt(int64(t), v)
	case int32:
		// rune is an alias of int32; hex-digit runes are accepted as symbols.
		if c, ok := fromSymbol(rune(t)); ok {
			return c, nil
		}
		return fromInt(int64(t), v)
	case int64:
		return fromInt(t, v)
	case uint:
		return fromUint(uint64(t), v)
	case uint8:
		// Likewise for byte.
		if c, ok := fromSymbol(rune(t)); ok {
			return c, nil
		}
		return fromUint(uint64(t), v)
	case uint16:
		return fromUint(uint64(t), v)
	case uint32:
		return fromUint(uint64(t), v)
	case uint64:
		return fromUint(t, v)
	case string:
		r := []rune(t)
		if len(r) != 1 {
			break
		}
		if c, ok := fromSymbol(r[0]); ok {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidColor, v)
}

// ParseSymbol converts a glyph file token to a Color.
func ParseSymbol(s string) (Color, error) {
	r := []rune(s)
	if len(r) == 1 {
		if c, ok := fromSymbol(r[0]); ok {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustNormalize is like Normalize but panics on error. Meant for constants.
func MustNormalize(v interface{}) Color {
	c, err := Normalize(v)
	if err != nil {
		panic(err)
	}
	return c
}

func fromInt(i int64, orig interface{}) (Color, error) {
	if i < int64(Off) || i > int64(Transparent) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidColor, orig)
	}
	return Color(i), nil
}

func fromUint(u uint64, orig interface{}) (Color, error) {
	if u > uint64(Transparent) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidColor, orig)
	}
	return Color(u), nil
}

func fromSymbol(r rune) (Color, bool) {
	switch {
	case r == '-':
		return Transparent, true
	case r >= '0' && r <= '9':
		return Color(r - '0'), true
	case r >= 'a' && r <= 'f':
		return Color(r-'a') + 0xa, true
	case r >= 'A' && r <= 'F':
		return Color(r-'A') + 0xa, true
	}
	return 0, false
}
