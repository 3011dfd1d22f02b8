package ledmatrix_test

import (
	"fmt"
	"image"

	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
	"github.com/fkcurrie/ledchain-golang/pkg/transport"
)

func Example() {
	// Two elements side by side, 16x8 pixels
	top, err := ledmatrix.NewTopology(ledmatrix.Horizontal(2))
	if err != nil {
		fmt.Printf("Failed to create topology: %v\n", err)
		return
	}

	sink := transport.NewRecorder()
	display := ledmatrix.NewDisplay(top, sink)
	defer display.Close()

	// Frame the whole display and light the bottom left of the second element
	if err := display.Rect(image.Pt(0, 0), image.Pt(16, 8), 0x1, false); err != nil {
		fmt.Printf("Failed to draw rect: %v\n", err)
		return
	}
	if err := display.Point(8, 7, 0xB); err != nil {
		fmt.Printf("Failed to set point: %v\n", err)
		return
	}

	if err := display.Show(); err != nil {
		fmt.Printf("Failed to show display: %v\n", err)
		return
	}

	frame := sink.Last()
	fmt.Printf("%dx%d, %d bytes, first byte %02x\n", top.Width(), top.Height(), len(frame), frame[0])
	// Output: 16x8, 64 bytes, first byte 0b
}

func ExampleTopology_Address() {
	top, err := ledmatrix.NewTopology([]ledmatrix.Element{
		{X: 0, Y: 0},
		{X: 8, Y: 0, Rotation: ledmatrix.Rotate180},
	})
	if err != nil {
		fmt.Printf("Failed to create topology: %v\n", err)
		return
	}

	for _, p := range []image.Point{{0, 7}, {8, 7}, {15, 0}} {
		bit, err := top.Address(p.X, p.Y)
		if err != nil {
			fmt.Printf("Failed to address %v: %v\n", p, err)
			return
		}
		fmt.Printf("%v -> bit %d\n", p, bit)
	}
	// Output:
	// (0,7) -> bit 260
	// (8,7) -> bit 248
	// (15,0) -> bit 4
}
