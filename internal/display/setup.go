package display

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/fkcurrie/ledchain-golang/internal/config"
	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
	"github.com/fkcurrie/ledchain-golang/pkg/transport"
)

// OpenSink opens the transport named in the configuration
func OpenSink(cfg *config.Config, logger *zap.Logger) (transport.Sink, error) {
	opt := transport.WithLogger(logger.Named("transport"))
	switch cfg.Transport.Kind {
	case config.TransportSPI:
		return transport.OpenSPI(cfg.SPI(), opt)
	case config.TransportGPIO:
		return transport.OpenGPIO(cfg.GPIO(), opt)
	case config.TransportRecorder:
		return transport.NewRecorder(opt), nil
	default:
		return nil, fmt.Errorf("%w: unknown transport %q", config.ErrInvalidConfig, cfg.Transport.Kind)
	}
}

// LoadFont loads the configured glyph directory. Without one it picks the
// 7x13 face when the frame is tall enough for it, and the 5x7 built-in font
// otherwise.
func LoadFont(cfg *config.Config) (*sprite.Font, error) {
	if cfg.Display.FontDir == "" {
		top, err := cfg.Topology()
		if err != nil {
			return nil, err
		}
		if face := sprite.FaceFont(basicfont.Face7x13); face.Height() <= top.Height() {
			return face, nil
		}
		return sprite.BasicFont(), nil
	}
	font, err := sprite.LoadFont(cfg.Display.FontDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load font from %s: %w", cfg.Display.FontDir, err)
	}
	return font, nil
}

// Open builds the display described by cfg
func Open(cfg *config.Config, logger *zap.Logger) (*ledmatrix.Display, error) {
	top, err := cfg.Topology()
	if err != nil {
		return nil, err
	}
	sink, err := OpenSink(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("display opened",
		zap.String("transport", cfg.Transport.Kind),
		zap.Int("elements", top.NumElements()),
		zap.Int("width", top.Width()),
		zap.Int("height", top.Height()),
		zap.Bool("zigzag", top.ZigZag()))
	return ledmatrix.NewDisplay(top, sink), nil
}
