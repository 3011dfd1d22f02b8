package ledmatrix

import (
	"errors"
	"fmt"
)

const (
	// ElementSize is the width and height of one matrix element in pixels.
	ElementSize = 8
	// BitsPerPixel is the size of a packed pixel on the wire.
	BitsPerPixel = 4
	// elementBits is the size of one element on the wire.
	elementBits = ElementSize * ElementSize * BitsPerPixel
)

var (
	// ErrEmptyTopology is returned when no element is configured.
	ErrEmptyTopology = errors.New("topology has no matrix elements")
	// ErrInvalidElement is returned for elements with negative offsets.
	ErrInvalidElement = errors.New("invalid matrix element")
	// ErrInvalidRotation is returned for angles that are not a multiple of 90.
	ErrInvalidRotation = errors.New("invalid rotation")
	// ErrOutOfBounds is returned for coordinates not covered by any element.
	ErrOutOfBounds = errors.New("coordinates out of bounds")
)

// Rotation is the mounting angle of an element, in degrees.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// ParseRotation normalizes any multiple of 90 degrees, negative included.
func ParseRotation(degrees int) (Rotation, error) {
	if degrees%90 != 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRotation, degrees)
	}
	return Rotation(((degrees % 360) + 360) % 360), nil
}

// Valid reports whether r is one of the four canonical angles.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Element is one physical 8x8 matrix, placed at X, Y in the logical frame.
type Element struct {
	X        int
	Y        int
	Rotation Rotation
}

// ChainRow is the row of elements this one sits on.
func (e Element) ChainRow() int {
	return e.Y / ElementSize
}

// Topology is the ordered chain of elements. Index 0 is the element wired
// to the host. It is immutable once built.
type Topology struct {
	elements []Element
	width    int
	height   int
	zigzag   bool
	// owner maps each frame cell to the chain index covering it, or -1.
	owner []int
}

// TopologyOption configures a Topology.
type TopologyOption func(*Topology)

// WithZigZag sets whether odd chain rows are wired in reverse.
func WithZigZag(enabled bool) TopologyOption {
	return func(t *Topology) {
		t.zigzag = enabled
	}
}

// NewTopology creates a topology from elements in wiring order. A nil slice
// gives a single element at the origin.
func NewTopology(elements []Element, opts ...TopologyOption) (*Topology, error) {
	if elements == nil {
		elements = []Element{{}}
	}
	if len(elements) == 0 {
		return nil, ErrEmptyTopology
	}

	t := &Topology{
		elements: make([]Element, len(elements)),
	}
	for _, opt := range opts {
		opt(t)
	}

	maxX, maxY := 0, 0
	for i, e := range elements {
		if e.X < 0 || e.Y < 0 {
			return nil, fmt.Errorf("%w: element %d has negative offset (%d, %d)", ErrInvalidElement, i, e.X, e.Y)
		}
		if !e.Rotation.Valid() {
			return nil, fmt.Errorf("%w: element %d has angle %d", ErrInvalidRotation, i, e.Rotation)
		}
		t.elements[i] = e
		if e.X > maxX {
			maxX = e.X
		}
		if e.Y > maxY {
			maxY = e.Y
		}
	}
	t.width = maxX + ElementSize
	t.height = maxY + ElementSize

	t.owner = make([]int, t.width*t.height)
	for i := range t.owner {
		t.owner[i] = -1
	}
	// Walk backwards so the first element in chain order wins overlaps.
	for i := len(t.elements) - 1; i >= 0; i-- {
		e := t.elements[i]
		for y := e.Y; y < e.Y+ElementSize; y++ {
			for x := e.X; x < e.X+ElementSize; x++ {
				t.owner[y*t.width+x] = i
			}
		}
	}

	return t, nil
}

// Horizontal returns n unrotated elements side by side, first one leftmost.
func Horizontal(n int) []Element {
	elements := make([]Element, n)
	for i := range elements {
		elements[i] = Element{X: i * ElementSize}
	}
	return elements
}

// ElementAt returns the element at chain index i.
func (t *Topology) ElementAt(i int) Element {
	return t.elements[i]
}

// NumElements returns the number of chained elements.
func (t *Topology) NumElements() int {
	return len(t.elements)
}

// Width returns the logical frame width.
func (t *Topology) Width() int {
	return t.width
}

// Height returns the logical frame height.
func (t *Topology) Height() int {
	return t.height
}

// ZigZag reports whether zig-zag wiring is enabled.
func (t *Topology) ZigZag() bool {
	return t.zigzag
}

// Locate returns the chain index of the first element covering (x, y).
func (t *Topology) Locate(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return 0, false
	}
	i := t.owner[y*t.width+x]
	if i < 0 {
		return 0, false
	}
	return i, true
}

// Contains reports whether (x, y) is on some element.
func (t *Topology) Contains(x, y int) bool {
	_, ok := t.Locate(x, y)
	return ok
}

// FrameBytes is the size of a packed frame on the wire.
func (t *Topology) FrameBytes() int {
	return len(t.elements) * elementBits / 8
}
