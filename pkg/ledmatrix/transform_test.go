package ledmatrix

import (
	"errors"
	"image"
	"testing"
)

func TestPhysicalAddressInjective(t *testing.T) {
	seen := make(map[int]image.Point)
	for y := 0; y < ElementSize; y++ {
		for x := 0; x < ElementSize; x++ {
			p := image.Pt(x, y)
			bit := PhysicalAddress(p, Rotate0, 0, 1, false)
			if bit < 0 || bit >= elementBits || bit%BitsPerPixel != 0 {
				t.Fatalf("PhysicalAddress(%v) = %d, not a valid pixel address", p, bit)
			}
			if prev, ok := seen[bit]; ok {
				t.Fatalf("PhysicalAddress(%v) = %d, same as %v", p, bit, prev)
			}
			seen[bit] = p
		}
	}
	if len(seen) != ElementSize*ElementSize {
		t.Errorf("got %d distinct addresses, want %d", len(seen), ElementSize*ElementSize)
	}
}

func TestPhysicalAddress(t *testing.T) {
	tests := []struct {
		name     string
		p        image.Point
		rot      Rotation
		index    int
		count    int
		mirrored bool
		want     int
	}{
		{name: "bottom left is first pixel, swapped", p: image.Pt(0, 7), count: 1, want: 4},
		{name: "second pixel, swapped", p: image.Pt(0, 6), count: 1, want: 0},
		{name: "top left", p: image.Pt(0, 0), count: 1, want: 24},
		{name: "next column", p: image.Pt(1, 7), count: 1, want: 36},
		{name: "last element comes first", p: image.Pt(0, 7), index: 1, count: 2, want: 4},
		{name: "first element comes last", p: image.Pt(0, 7), index: 0, count: 2, want: 260},
		{name: "mirrored", p: image.Pt(0, 0), count: 1, mirrored: true, want: 228},
		{name: "rotate 90", p: image.Pt(0, 0), rot: Rotate90, count: 1, want: 4},
		{name: "rotate 180", p: image.Pt(7, 7), rot: Rotate180, count: 1, want: 24},
		{name: "rotate 270", p: image.Pt(0, 0), rot: Rotate270, count: 1, want: 248},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PhysicalAddress(tt.p, tt.rot, tt.index, tt.count, tt.mirrored)
			if got != tt.want {
				t.Errorf("PhysicalAddress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRotateFullTurn(t *testing.T) {
	for y := 0; y < ElementSize; y++ {
		for x := 0; x < ElementSize; x++ {
			p := image.Pt(x, y)
			q := p
			for i := 0; i < 4; i++ {
				q = rotate(q, Rotate90)
			}
			if q != p {
				t.Fatalf("four quarter turns of %v = %v", p, q)
			}
			want := PhysicalAddress(p, Rotate0, 0, 1, false)
			if got := PhysicalAddress(q, Rotate0, 0, 1, false); got != want {
				t.Errorf("address after full turn of %v = %d, want %d", p, got, want)
			}
			// A 90 degree element is the unrotated transform of the rotated point.
			if got, want := PhysicalAddress(p, Rotate90, 0, 1, false), PhysicalAddress(rotate(p, Rotate90), Rotate0, 0, 1, false); got != want {
				t.Errorf("rotated address of %v = %d, want %d", p, got, want)
			}
		}
	}
}

func TestTopologyAddress(t *testing.T) {
	elements := []Element{{X: 0, Y: 0}, {X: 0, Y: 8}}

	plain, err := NewTopology(elements)
	if err != nil {
		t.Fatal(err)
	}
	zigzag, err := NewTopology(elements, WithZigZag(true))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		top  *Topology
		x, y int
		want int
	}{
		{name: "first element, row 0", top: zigzag, x: 0, y: 7, want: 260},
		{name: "odd row not mirrored", top: plain, x: 0, y: 8, want: 24},
		{name: "odd row mirrored", top: zigzag, x: 0, y: 8, want: 228},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.top.Address(tt.x, tt.y)
			if err != nil {
				t.Fatalf("Address() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Address(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if _, err := plain.Address(8, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Address(8, 0) error = %v, want ErrOutOfBounds", err)
	}
}

func TestPack(t *testing.T) {
	top, err := NewTopology(nil)
	if err != nil {
		t.Fatal(err)
	}
	fb := NewFrameBuffer(top)
	if err := fb.Point(0, 7, 0xA); err != nil {
		t.Fatal(err)
	}
	if err := fb.Point(0, 6, 0x3); err != nil {
		t.Fatal(err)
	}
	if err := fb.Point(7, 0, 0xF); err != nil {
		t.Fatal(err)
	}

	buf := Pack(fb)
	if len(buf) != 32 {
		t.Fatalf("Pack() length = %d, want 32", len(buf))
	}
	if buf[0] != 0x3A {
		t.Errorf("byte 0 = %#x, want 0x3a", buf[0])
	}
	// (7, 0) is bit 7*32+28 = 252, swapped to 248: high nibble of byte 31.
	if buf[31] != 0xF0 {
		t.Errorf("byte 31 = %#x, want 0xf0", buf[31])
	}
	for i := 1; i < 31; i++ {
		if buf[i] != 0 {
			t.Errorf("byte %d = %#x, want 0 for transparent cells", i, buf[i])
		}
	}
}
