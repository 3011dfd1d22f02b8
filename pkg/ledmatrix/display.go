// Package ledmatrix drives a chain of 8x8 LED matrix elements as one logical
// frame buffer.
//
// A Topology describes where each element of the chain sits in the frame and
// how it is mounted. The FrameBuffer holds the logical pixels and offers the
// drawing primitives. Pack turns it into the bit layout of the serial chain,
// and a Display hands that to a transport.Sink.
package ledmatrix

import (
	"fmt"
	"image"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
	"github.com/fkcurrie/ledchain-golang/pkg/transport"
)

// Display binds a frame buffer to the sink that shows it.
type Display struct {
	*FrameBuffer
	sink transport.Sink
}

// NewDisplay creates a display with an erased frame buffer.
func NewDisplay(t *Topology, sink transport.Sink) *Display {
	return &Display{
		FrameBuffer: NewFrameBuffer(t),
		sink:        sink,
	}
}

// Show packs the frame buffer and flushes it to the sink.
func (d *Display) Show() error {
	if err := d.sink.Write(Pack(d.FrameBuffer)); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if err := d.sink.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	return nil
}

// Text composes message with f and blits it at origin. The composed sprite is
// returned so callers can scroll it.
func (d *Display) Text(message string, f *sprite.Font, origin image.Point) (*sprite.Sprite, error) {
	s, err := sprite.ComposeText(message, f, 1)
	if err != nil {
		return nil, err
	}
	d.Blit(s, origin)
	return s, nil
}

// Close turns every LED off and closes the sink.
func (d *Display) Close() error {
	if err := d.Fill(ledcolor.Off); err != nil {
		return err
	}
	showErr := d.Show()
	if err := d.sink.Close(); err != nil {
		return fmt.Errorf("failed to close sink: %w", err)
	}
	return showErr
}
