package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/fkcurrie/ledchain-golang/internal/types"
	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
	"github.com/fkcurrie/ledchain-golang/pkg/transport"
)

// Transport kinds
const (
	TransportSPI      = "spi"
	TransportGPIO     = "gpio"
	TransportRecorder = "recorder"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	Matrix    types.MatrixConfig    `json:"matrix"`
	Transport types.TransportConfig `json:"transport"`
	Display   types.DisplayConfig   `json:"display"`
	Server    types.ServerConfig    `json:"server"`
}

// LoadConfig loads the configuration from a file. Fields missing from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	// Elements are decoded into a fresh slice so that a listed element never
	// inherits offsets from the default chain.
	config := DefaultConfig()
	defaults := config.Matrix.Elements
	config.Matrix.Elements = nil
	dec := json.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if config.Matrix.Elements == nil {
		config.Matrix.Elements = defaults
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Matrix: types.MatrixConfig{
			Elements: []types.ElementConfig{
				{X: 0, Y: 0},
				{X: 8, Y: 0},
				{X: 16, Y: 0},
				{X: 24, Y: 0},
			},
		},
		Transport: types.TransportConfig{
			Kind:       TransportSPI,
			SPIPort:    transport.DefaultSPIPort,
			SPISpeedHz: int64(transport.DefaultSPISpeed / physic.Hertz),
			GPIOChip:   transport.DefaultGPIOChip,
			DataPin:    10,
			ClockPin:   11,
			LatchPin:   8,
		},
		Display: types.DisplayConfig{
			UpdateInterval: 0.05,
			ScrollInterval: 0.1,
			TextColor:      "f",
			Spacing:        1,
		},
		Server: types.ServerConfig{
			Port: 8080,
		},
	}
}

// Validate checks the configuration for values the display cannot use
func (c *Config) Validate() error {
	if _, err := c.Topology(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Transport.Kind {
	case TransportSPI:
		if c.Transport.SPIPort == "" {
			return fmt.Errorf("%w: spi_port is empty", ErrInvalidConfig)
		}
		if c.Transport.SPISpeedHz <= 0 {
			return fmt.Errorf("%w: spi_speed_hz must be positive, got %d", ErrInvalidConfig, c.Transport.SPISpeedHz)
		}
	case TransportGPIO:
		pins := []int{c.Transport.DataPin, c.Transport.ClockPin, c.Transport.LatchPin}
		for _, p := range pins {
			if p < 0 {
				return fmt.Errorf("%w: negative gpio pin %d", ErrInvalidConfig, p)
			}
		}
		if pins[0] == pins[1] || pins[0] == pins[2] || pins[1] == pins[2] {
			return fmt.Errorf("%w: gpio pins must differ, got %v", ErrInvalidConfig, pins)
		}
	case TransportRecorder:
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, c.Transport.Kind)
	}

	if c.Display.UpdateInterval <= 0 {
		return fmt.Errorf("%w: update_interval must be positive", ErrInvalidConfig)
	}
	if c.Display.ScrollInterval <= 0 {
		return fmt.Errorf("%w: scroll_interval must be positive", ErrInvalidConfig)
	}
	if c.Display.Spacing < 0 {
		return fmt.Errorf("%w: spacing must not be negative", ErrInvalidConfig)
	}
	if _, err := ledcolor.Normalize(c.Display.TextColor); err != nil {
		return fmt.Errorf("%w: text_color: %v", ErrInvalidConfig, err)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// Elements converts the configured chain into topology elements
func (c *Config) Elements() ([]ledmatrix.Element, error) {
	if len(c.Matrix.Elements) == 0 {
		return nil, nil
	}
	elements := make([]ledmatrix.Element, 0, len(c.Matrix.Elements))
	for i, e := range c.Matrix.Elements {
		rot, err := ledmatrix.ParseRotation(e.Rotation)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if e.X < 0 || e.Y < 0 {
			return nil, fmt.Errorf("element %d: %w: offset (%d, %d)", i, ledmatrix.ErrInvalidElement, e.X, e.Y)
		}
		elements = append(elements, ledmatrix.Element{X: e.X, Y: e.Y, Rotation: rot})
	}
	return elements, nil
}

// Topology builds the chain topology
func (c *Config) Topology() (*ledmatrix.Topology, error) {
	elements, err := c.Elements()
	if err != nil {
		return nil, err
	}
	return ledmatrix.NewTopology(elements, ledmatrix.WithZigZag(c.Matrix.ZigZag))
}

// SPI returns the SPI sink settings
func (c *Config) SPI() transport.SPIConfig {
	return transport.SPIConfig{
		Port:  c.Transport.SPIPort,
		Speed: physic.Frequency(c.Transport.SPISpeedHz) * physic.Hertz,
	}
}

// GPIO returns the bit-banged sink settings
func (c *Config) GPIO() transport.GPIOConfig {
	return transport.GPIOConfig{
		Chip:     c.Transport.GPIOChip,
		DataPin:  c.Transport.DataPin,
		ClockPin: c.Transport.ClockPin,
		LatchPin: c.Transport.LatchPin,
	}
}

// UpdateInterval returns the refresh period
func (c *Config) UpdateInterval() time.Duration {
	return seconds(c.Display.UpdateInterval)
}

// ScrollInterval returns the time per scrolled column
func (c *Config) ScrollInterval() time.Duration {
	return seconds(c.Display.ScrollInterval)
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
