package transport

import (
	"sync"

	"go.uber.org/zap"
)

// Recorder is a Sink that keeps the last flushed frame in memory. It is used
// for headless runs and tests.
type Recorder struct {
	mu      sync.Mutex
	staged  []byte
	last    []byte
	flushes int
	closed  bool
	logger  *zap.Logger
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	o := newOptions(opts)
	return &Recorder{logger: o.logger}
}

// Write implements Sink.
func (r *Recorder) Write(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.staged = append(r.staged[:0], frame...)
	return nil
}

// Flush implements Sink.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	r.last = append([]byte(nil), r.staged...)
	r.flushes++
	r.logger.Debug("frame recorded", zap.Int("bytes", len(r.last)), zap.Int("flushes", r.flushes))
	return nil
}

// Close implements Sink.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}

// Last returns a copy of the last flushed frame.
func (r *Recorder) Last() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]byte(nil), r.last...)
}

// Flushes returns how many frames were flushed.
func (r *Recorder) Flushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.flushes
}
