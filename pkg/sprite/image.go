package sprite

import (
	"fmt"
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
)

// FromImage converts img to a sprite through ledcolor.Model.
func FromImage(img image.Image) *Sprite {
	b := img.Bounds()
	s := blank(b.Dy(), b.Dx(), ledcolor.Transparent)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.pix[y*s.width+x] = ledcolor.Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(ledcolor.Color)
		}
	}
	return s
}

// FromSVG rasterizes an SVG icon to width x height pixels.
func FromSVG(r io.Reader, width, height int) (*Sprite, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	return FromImage(rgba), nil
}
