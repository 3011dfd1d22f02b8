package ledmatrix

import (
	"image"

	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
)

// Blit draws s with its top left corner at origin. Transparent pixels leave
// the frame untouched and pixels off the frame are clipped.
func (fb *FrameBuffer) Blit(s *sprite.Sprite, origin image.Point) {
	// Only walk the part of the sprite that overlaps the frame.
	r := s.Bounds().Add(origin).Intersect(fb.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, _ := s.Pixel(x-origin.X, y-origin.Y)
			if !c.Opaque() {
				continue
			}
			fb.plot(x, y, c)
		}
	}
}
