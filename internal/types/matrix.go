package types

// ElementConfig places one 8x8 element of the chain in the frame
type ElementConfig struct {
	X        int `json:"x"`
	Y        int `json:"y"`
	Rotation int `json:"rotation"`
}

// MatrixConfig represents the configuration for the LED matrix chain
type MatrixConfig struct {
	// Elements in chain order. Empty means a single element at the origin.
	Elements []ElementConfig `json:"elements"`
	ZigZag   bool            `json:"zigzag"`
}

// TransportConfig represents the configuration for the link to the chain
type TransportConfig struct {
	// Kind is one of "spi", "gpio" or "recorder"
	Kind       string `json:"kind"`
	SPIPort    string `json:"spi_port"`
	SPISpeedHz int64  `json:"spi_speed_hz"`
	GPIOChip   string `json:"gpio_chip"`
	DataPin    int    `json:"data_pin"`
	ClockPin   int    `json:"clock_pin"`
	LatchPin   int    `json:"latch_pin"`
}

// DisplayConfig represents the configuration for the display
type DisplayConfig struct {
	// FontDir holds number/, upper/ and lower/ glyph files. Empty uses the
	// built-in font.
	FontDir string `json:"font_dir"`

	// UpdateInterval is the refresh period in seconds
	UpdateInterval float64 `json:"update_interval"`

	// ScrollInterval is the time per scrolled column in seconds
	ScrollInterval float64 `json:"scroll_interval"`

	// Text is shown at startup
	Text      string `json:"text"`
	TextColor string `json:"text_color"`
	Scroll    bool   `json:"scroll"`
	Spacing   int    `json:"spacing"`
}

// ServerConfig represents the configuration for the HTTP API
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}
