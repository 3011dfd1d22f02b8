package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/fkcurrie/ledchain-golang/internal/types"
	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	top, err := cfg.Topology()
	if err != nil {
		t.Fatalf("Topology() error = %v", err)
	}
	if top.Width() != 32 || top.Height() != 8 {
		t.Errorf("Topology() = %dx%d, want 32x8", top.Width(), top.Height())
	}
	if cfg.SPI().Speed != 5*physic.MegaHertz {
		t.Errorf("SPI().Speed = %v, want 5MHz", cfg.SPI().Speed)
	}
	if cfg.UpdateInterval() != 50*time.Millisecond {
		t.Errorf("UpdateInterval() = %v, want 50ms", cfg.UpdateInterval())
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"matrix": {
			"elements": [
				{"x": 0, "y": 0},
				{"x": 0, "y": 8, "rotation": 180}
			],
			"zigzag": true
		},
		"transport": {"kind": "recorder"},
		"server": {"port": 9090}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want :9090", cfg.Addr())
	}
	// Unset sections keep their defaults.
	if cfg.Display.TextColor != "f" || cfg.Display.Spacing != 1 {
		t.Errorf("Display = %+v, want defaults", cfg.Display)
	}

	top, err := cfg.Topology()
	if err != nil {
		t.Fatalf("Topology() error = %v", err)
	}
	if !top.ZigZag() || top.NumElements() != 2 {
		t.Errorf("Topology() zigzag=%v elements=%d, want true, 2", top.ZigZag(), top.NumElements())
	}
	if top.ElementAt(1).Rotation != ledmatrix.Rotate180 {
		t.Errorf("element 1 rotation = %d, want 180", top.ElementAt(1).Rotation)
	}
}

func TestLoadConfigElements(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		elements      int
		width, height int
	}{
		{
			name:     "omitted offsets are zero",
			body:     `{"matrix": {"elements": [{"x": 0, "y": 0}, {"y": 8}]}, "transport": {"kind": "recorder"}}`,
			elements: 2,
			width:    8,
			height:   16,
		},
		{
			name:     "no matrix keeps the default chain",
			body:     `{"transport": {"kind": "recorder"}}`,
			elements: 4,
			width:    32,
			height:   8,
		},
		{
			name:     "empty list is a single element",
			body:     `{"matrix": {"elements": []}}`,
			elements: 1,
			width:    8,
			height:   8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.body))
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}
			top, err := cfg.Topology()
			if err != nil {
				t.Fatalf("Topology() error = %v", err)
			}
			if top.NumElements() != tt.elements || top.Width() != tt.width || top.Height() != tt.height {
				t.Errorf("Topology() = %d elements %dx%d, want %d elements %dx%d",
					top.NumElements(), top.Width(), top.Height(), tt.elements, tt.width, tt.height)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"matrix": `},
		{name: "unknown field", body: `{"colour": "f"}`},
		{name: "invalid", body: `{"transport": {"kind": "serial"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("LoadConfig() error = nil")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig() error = %v, want os.ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "bad rotation", modify: func(c *Config) { c.Matrix.Elements = []types.ElementConfig{{Rotation: 45}} }},
		{name: "negative offset", modify: func(c *Config) { c.Matrix.Elements = []types.ElementConfig{{X: -8}} }},
		{name: "unknown transport", modify: func(c *Config) { c.Transport.Kind = "usb" }},
		{name: "empty spi port", modify: func(c *Config) { c.Transport.SPIPort = "" }},
		{name: "zero spi speed", modify: func(c *Config) { c.Transport.SPISpeedHz = 0 }},
		{name: "shared gpio pin", modify: func(c *Config) {
			c.Transport.Kind = TransportGPIO
			c.Transport.LatchPin = c.Transport.DataPin
		}},
		{name: "zero update interval", modify: func(c *Config) { c.Display.UpdateInterval = 0 }},
		{name: "zero scroll interval", modify: func(c *Config) { c.Display.ScrollInterval = 0 }},
		{name: "negative spacing", modify: func(c *Config) { c.Display.Spacing = -1 }},
		{name: "bad text color", modify: func(c *Config) { c.Display.TextColor = "red" }},
		{name: "port out of range", modify: func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEmptyChainIsSingleElement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Matrix.Elements = nil
	top, err := cfg.Topology()
	if err != nil {
		t.Fatalf("Topology() error = %v", err)
	}
	if top.NumElements() != 1 || top.Width() != 8 {
		t.Errorf("Topology() = %d elements, width %d, want 1, 8", top.NumElements(), top.Width())
	}
}
