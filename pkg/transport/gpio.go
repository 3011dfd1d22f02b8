package transport

import (
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"
	"go.uber.org/zap"
)

// DefaultGPIOChip is the chip holding the header pins on a Raspberry Pi.
const DefaultGPIOChip = "gpiochip0"

// GPIOConfig holds the pin assignment of a GPIO sink.
type GPIOConfig struct {
	Chip     string
	DataPin  int
	ClockPin int
	LatchPin int
}

// line is the part of a gpiocdev.Line the sink uses.
type line interface {
	SetValue(value int) error
	Close() error
}

// GPIO is a Sink that bit-bangs frames over data, clock and latch lines,
// MSB first, pulsing the latch once the whole chain has been shifted.
type GPIO struct {
	mu     sync.Mutex
	data   line
	clock  line
	latch  line
	frame  []byte
	closed bool
	logger *zap.Logger
}

// OpenGPIO requests the configured lines as outputs.
func OpenGPIO(cfg GPIOConfig, opts ...Option) (*GPIO, error) {
	if cfg.Chip == "" {
		cfg.Chip = DefaultGPIOChip
	}

	o := newOptions(opts)
	pins := []int{cfg.DataPin, cfg.ClockPin, cfg.LatchPin}
	lines := make([]line, 0, len(pins))
	for _, pin := range pins {
		l, err := gpiocdev.RequestLine(cfg.Chip, pin,
			gpiocdev.AsOutput(0),
			gpiocdev.WithConsumer("ledchain"))
		if err != nil {
			for _, opened := range lines {
				opened.Close()
			}
			return nil, fmt.Errorf("failed to request %s line %d: %w", cfg.Chip, pin, err)
		}
		o.logger.Debug("requested GPIO line", zap.String("chip", cfg.Chip), zap.Int("pin", pin))
		lines = append(lines, l)
	}

	return newGPIO(lines[0], lines[1], lines[2], o), nil
}

func newGPIO(data, clock, latch line, o options) *GPIO {
	return &GPIO{
		data:   data,
		clock:  clock,
		latch:  latch,
		logger: o.logger,
	}
}

// Write implements Sink.
func (g *GPIO) Write(frame []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}
	g.frame = append(g.frame[:0], frame...)
	return nil
}

// Flush implements Sink.
func (g *GPIO) Flush() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrClosed
	}

	for i, b := range g.frame {
		for bit := 7; bit >= 0; bit-- {
			if err := g.data.SetValue(int(b>>uint(bit)) & 1); err != nil {
				return fmt.Errorf("failed to set data bit %d of byte %d: %w", bit, i, err)
			}
			if err := g.pulse(g.clock); err != nil {
				return fmt.Errorf("failed to clock byte %d: %w", i, err)
			}
		}
	}
	if err := g.pulse(g.latch); err != nil {
		return fmt.Errorf("failed to latch frame: %w", err)
	}
	g.logger.Debug("frame shifted", zap.Int("bytes", len(g.frame)))
	return nil
}

func (g *GPIO) pulse(l line) error {
	if err := l.SetValue(1); err != nil {
		return err
	}
	return l.SetValue(0)
}

// Close implements Sink.
func (g *GPIO) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true

	var firstErr error
	for _, l := range []line{g.data, g.clock, g.latch} {
		if err := l.Close(); err != nil {
			g.logger.Warn("failed to close GPIO line", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
