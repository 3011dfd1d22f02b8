package transport

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

const (
	// DefaultSPIPort is the bus the matrix chain is wired to on a Raspberry Pi.
	DefaultSPIPort = "/dev/spidev0.0"
	// DefaultSPISpeed is the bus clock.
	DefaultSPISpeed = 5 * physic.MegaHertz
)

// SPIConfig holds the bus settings of an SPI sink.
type SPIConfig struct {
	Port  string
	Speed physic.Frequency
}

// SPI is a Sink that shifts frames out over an SPI bus, mode 0, 8 bits per
// word.
type SPI struct {
	mu     sync.Mutex
	conn   spi.Conn
	port   io.Closer
	frame  []byte
	closed bool
	logger *zap.Logger
}

// OpenSPI initializes the host drivers and opens the configured port.
func OpenSPI(cfg SPIConfig, opts ...Option) (*SPI, error) {
	if cfg.Port == "" {
		cfg.Port = DefaultSPIPort
	}
	if cfg.Speed == 0 {
		cfg.Speed = DefaultSPISpeed
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host drivers: %w", err)
	}

	port, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to open SPI port %s: %w", cfg.Port, err)
	}

	c, err := port.Connect(cfg.Speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to connect to SPI port %s: %w", cfg.Port, err)
	}

	s := NewSPI(c, port, opts...)
	s.logger.Info("opened SPI sink", zap.String("port", cfg.Port), zap.Stringer("speed", cfg.Speed))
	return s, nil
}

// NewSPI wraps an already connected SPI conn. port is closed with the sink
// and may be nil.
func NewSPI(c spi.Conn, port io.Closer, opts ...Option) *SPI {
	o := newOptions(opts)
	return &SPI{
		conn:   c,
		port:   port,
		logger: o.logger,
	}
}

// Write implements Sink.
func (s *SPI) Write(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.frame = append(s.frame[:0], frame...)
	return nil
}

// Flush implements Sink. Frames larger than the port's transfer limit are
// sent in several transactions.
func (s *SPI) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	chunk := len(s.frame)
	if l, ok := s.conn.(conn.Limits); ok {
		if limit := l.MaxTxSize(); limit > 0 && limit < chunk {
			chunk = limit
		}
	}

	for off := 0; off < len(s.frame); off += chunk {
		end := off + chunk
		if end > len(s.frame) {
			end = len(s.frame)
		}
		if err := s.conn.Tx(s.frame[off:end], nil); err != nil {
			return fmt.Errorf("failed to send %d bytes at offset %d: %w", end-off, off, err)
		}
	}
	s.logger.Debug("frame sent", zap.Int("bytes", len(s.frame)), zap.Int("chunk", chunk))
	return nil
}

// Close implements Sink.
func (s *SPI) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.port != nil {
		if err := s.port.Close(); err != nil {
			return fmt.Errorf("failed to close SPI port: %w", err)
		}
	}
	return nil
}
