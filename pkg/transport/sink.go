// Package transport moves packed frames to the LED matrix chain.
//
// A Sink receives the whole chain as a packed byte slice, two pixels per
// byte, and sends it to the hardware on Flush.
package transport

import (
	"errors"

	"go.uber.org/zap"
)

// ErrClosed is returned when a sink is used after Close.
var ErrClosed = errors.New("sink is closed")

// Sink accepts packed frames.
type Sink interface {
	// Write stages a frame. The sink keeps its own copy.
	Write(frame []byte) error
	// Flush sends the staged frame to the chain. It blocks until the
	// transfer is done.
	Flush() error
	// Close releases the underlying device.
	Close() error
}

type options struct {
	logger *zap.Logger
}

// Option configures a sink.
type Option func(*options)

// WithLogger sets the logger used by a sink.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
