package main

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"time"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
)

// endcaps erases the frame and crosses out the first and last element
func endcaps(fb *ledmatrix.FrameBuffer) error {
	fb.Erase()
	w := fb.Width()
	lines := [][2]image.Point{
		{{0, 0}, {7, 7}},
		{{0, 7}, {7, 0}},
		{{w - 8, 0}, {w - 1, 7}},
		{{w - 8, 7}, {w - 1, 0}},
	}
	for _, l := range lines {
		if err := fb.Line(l[0], l[1], ledcolor.Max); err != nil {
			return err
		}
	}
	return nil
}

// numberElements writes the chain index on every element between the caps
func numberElements(fb *ledmatrix.FrameBuffer, font *sprite.Font) error {
	if err := endcaps(fb); err != nil {
		return err
	}
	n := fb.Topology().NumElements()
	for i := 1; i < n-1; i++ {
		digit, err := sprite.ComposeText(strconv.Itoa(i%10), font, 0)
		if err != nil {
			return err
		}
		e := fb.Topology().ElementAt(i)
		fb.Blit(digit, image.Pt(e.X+1, e.Y))
	}
	return nil
}

// inner returns the origin and size of the area between the caps
func inner(fb *ledmatrix.FrameBuffer) (image.Point, image.Point) {
	return image.Pt(ledmatrix.ElementSize, 0), image.Pt(fb.Width()-2*ledmatrix.ElementSize, ledmatrix.ElementSize)
}

// brightness fills the area between the caps with one level of the ramp
func brightness(fb *ledmatrix.FrameBuffer, level ledcolor.Color) error {
	if err := endcaps(fb); err != nil {
		return err
	}
	origin, size := inner(fb)
	return fb.Rect(origin, size, level, true)
}

// sweep draws a horizontal line between the caps at row y
func sweep(fb *ledmatrix.FrameBuffer, y int) error {
	if err := endcaps(fb); err != nil {
		return err
	}
	return fb.Line(image.Pt(ledmatrix.ElementSize, y), image.Pt(fb.Width()-ledmatrix.ElementSize-1, y), ledcolor.Max)
}

// hash draws a checker of 2x2 diagonal pairs between the caps. With invert
// the area is lit first and the pairs are turned off.
func hash(fb *ledmatrix.FrameBuffer, invert bool) error {
	if err := endcaps(fb); err != nil {
		return err
	}
	c := ledcolor.Max
	if invert {
		origin, size := inner(fb)
		if err := fb.Rect(origin, size, ledcolor.Max, true); err != nil {
			return err
		}
		c = ledcolor.Off
	}
	for x := ledmatrix.ElementSize; x < fb.Width()-ledmatrix.ElementSize; x += 2 {
		for y := 0; y < ledmatrix.ElementSize; y += 2 {
			if err := fb.Point(x, y, c); err != nil {
				return err
			}
			if err := fb.Point(x+1, y+1, c); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkSpeed rejects playback speeds that do not give a finite pause
func checkSpeed(speed float64) error {
	if !(speed > 0) || math.IsInf(speed, 1) {
		return fmt.Errorf("speed must be a positive number, got %v", speed)
	}
	return nil
}

// scale shortens d by the playback speed
func scale(d time.Duration, speed float64) time.Duration {
	return time.Duration(float64(d) / speed)
}
