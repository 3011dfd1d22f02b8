package ledmatrix

import (
	"errors"
	"testing"
)

func TestNewTopology(t *testing.T) {
	tests := []struct {
		name       string
		elements   []Element
		wantWidth  int
		wantHeight int
		wantErr    error
	}{
		{name: "default", elements: nil, wantWidth: 8, wantHeight: 8},
		{name: "row of four", elements: Horizontal(4), wantWidth: 32, wantHeight: 8},
		{name: "two rows", elements: []Element{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 8}, {X: 0, Y: 8}}, wantWidth: 16, wantHeight: 16},
		{name: "odd offsets", elements: []Element{{X: 3, Y: 1}, {X: 20, Y: 0, Rotation: Rotate90}}, wantWidth: 28, wantHeight: 9},
		{name: "empty", elements: []Element{}, wantErr: ErrEmptyTopology},
		{name: "negative", elements: []Element{{X: -1}}, wantErr: ErrInvalidElement},
		{name: "bad rotation", elements: []Element{{Rotation: 45}}, wantErr: ErrInvalidRotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top, err := NewTopology(tt.elements)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewTopology() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTopology() error = %v", err)
			}
			if top.Width() != tt.wantWidth || top.Height() != tt.wantHeight {
				t.Errorf("NewTopology() = %dx%d, want %dx%d", top.Width(), top.Height(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestTopologyIsolation(t *testing.T) {
	elements := Horizontal(2)
	top, err := NewTopology(elements)
	if err != nil {
		t.Fatal(err)
	}
	elements[1].X = 100
	if top.ElementAt(1).X != 8 {
		t.Errorf("topology shares the caller's slice")
	}
	if top.NumElements() != 2 {
		t.Errorf("NumElements() = %d, want 2", top.NumElements())
	}
	if top.FrameBytes() != 64 {
		t.Errorf("FrameBytes() = %d, want 64", top.FrameBytes())
	}
}

func TestLocate(t *testing.T) {
	// Two elements with a gap between them and an overlap with a third.
	top, err := NewTopology([]Element{{X: 0, Y: 0}, {X: 16, Y: 0}, {X: 4, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x, y   int
		want   int
		wantOK bool
	}{
		{x: 0, y: 0, want: 0, wantOK: true},
		{x: 7, y: 7, want: 0, wantOK: true},
		{x: 8, y: 0, want: 2, wantOK: true},
		{x: 11, y: 3, want: 2, wantOK: true},
		{x: 12, y: 3, wantOK: false},
		{x: 16, y: 7, want: 1, wantOK: true},
		{x: 23, y: 0, want: 1, wantOK: true},
		{x: 24, y: 0, wantOK: false},
		{x: -1, y: 0, wantOK: false},
		{x: 0, y: 8, wantOK: false},
	}
	for _, tt := range tests {
		got, ok := top.Locate(tt.x, tt.y)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Locate(%d, %d) = %d, %v, want %d, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
		}
		if top.Contains(tt.x, tt.y) != tt.wantOK {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, !tt.wantOK, tt.wantOK)
		}
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		in      int
		want    Rotation
		wantErr bool
	}{
		{in: 0, want: Rotate0},
		{in: 90, want: Rotate90},
		{in: -90, want: Rotate270},
		{in: 540, want: Rotate180},
		{in: 45, wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseRotation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRotation(%d) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseRotation(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
