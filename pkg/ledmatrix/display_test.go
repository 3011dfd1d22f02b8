package ledmatrix

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
	"github.com/fkcurrie/ledchain-golang/pkg/transport"
)

// failingSink fails every flush
type failingSink struct {
	transport.Recorder
}

var errFlush = errors.New("bus error")

func (f *failingSink) Flush() error { return errFlush }

func newTestDisplay(t *testing.T, sink transport.Sink) *Display {
	t.Helper()
	top, err := NewTopology(Horizontal(2))
	if err != nil {
		t.Fatalf("NewTopology() error = %v", err)
	}
	return NewDisplay(top, sink)
}

func TestDisplayShow(t *testing.T) {
	rec := transport.NewRecorder()
	d := newTestDisplay(t, rec)

	if err := d.Point(8, 7, 0xB); err != nil {
		t.Fatal(err)
	}
	if err := d.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if rec.Flushes() != 1 {
		t.Errorf("Flushes() = %d, want 1", rec.Flushes())
	}
	want := Pack(d.FrameBuffer)
	if !bytes.Equal(rec.Last(), want) {
		t.Errorf("Show() sent %x, want %x", rec.Last(), want)
	}
	// (8, 7) is the bottom left of the second element, first on the wire.
	if rec.Last()[0] != 0x0B {
		t.Errorf("byte 0 = %#x, want 0x0b", rec.Last()[0])
	}
}

func TestDisplayShowError(t *testing.T) {
	d := newTestDisplay(t, &failingSink{})
	if err := d.Show(); !errors.Is(err, errFlush) {
		t.Errorf("Show() error = %v, want %v", err, errFlush)
	}
}

func TestDisplayClose(t *testing.T) {
	rec := transport.NewRecorder()
	d := newTestDisplay(t, rec)
	d.Fill(0xF)

	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	for i, b := range rec.Last() {
		if b != 0 {
			t.Fatalf("byte %d = %#x after Close(), want 0", i, b)
		}
	}
	if err := d.Show(); !errors.Is(err, transport.ErrClosed) {
		t.Errorf("Show() after Close() error = %v, want ErrClosed", err)
	}
}

func TestDisplayText(t *testing.T) {
	d := newTestDisplay(t, transport.NewRecorder())
	bar, err := sprite.Blank(3, 2, 0x6)
	if err != nil {
		t.Fatal(err)
	}
	font := sprite.NewFont(map[rune]*sprite.Sprite{'I': bar})

	s, err := d.Text("II", font, image.Pt(1, 2))
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if s.Width() != 5 || s.Height() != 3 {
		t.Errorf("Text() sprite = %dx%d, want 5x3", s.Width(), s.Height())
	}
	checks := map[image.Point]ledcolor.Color{
		{1, 2}: 0x6,
		{2, 4}: 0x6,
		{3, 3}: ledcolor.Transparent,
		{4, 2}: 0x6,
		{5, 4}: 0x6,
		{6, 2}: ledcolor.Transparent,
	}
	for p, want := range checks {
		if got, _ := d.Get(p.X, p.Y); got != want {
			t.Errorf("Get(%v) = %v, want %v", p, got, want)
		}
	}

	if _, err := d.Text("I?", font, image.Point{}); !errors.Is(err, sprite.ErrInvalidCharacter) {
		t.Errorf("Text() error = %v, want ErrInvalidCharacter", err)
	}
}
