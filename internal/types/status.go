package types

import (
	"time"
)

// PointRequest sets a single pixel
type PointRequest struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

// LineRequest draws a line between two pixels
type LineRequest struct {
	X0    int    `json:"x0"`
	Y0    int    `json:"y0"`
	X1    int    `json:"x1"`
	Y1    int    `json:"y1"`
	Color string `json:"color"`
}

// RectRequest draws a rectangle
type RectRequest struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
	Fill   bool   `json:"fill"`
}

// TextRequest replaces the text shown on the display
type TextRequest struct {
	Text   string `json:"text"`
	Color  string `json:"color"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Scroll bool   `json:"scroll"`
}

// Frame is a snapshot of the frame buffer. Each row is a string of color
// symbols, "-" for transparent cells.
type Frame struct {
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Rows      []string  `json:"rows"`
	Sequence  uint64    `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
}

// Status represents the state reported by the health endpoint
type Status struct {
	Status      string    `json:"status"`
	Elements    int       `json:"elements"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Text        string    `json:"text,omitempty"`
	Frames      uint64    `json:"frames"`
	LastUpdated time.Time `json:"last_updated"`
}

// ErrorResponse is returned by the API on failure
type ErrorResponse struct {
	Error string `json:"error"`
}
