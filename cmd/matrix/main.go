package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/fkcurrie/ledchain-golang/internal/config"
	"github.com/fkcurrie/ledchain-golang/internal/display"
	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
)

func main() {
	configPath := flag.String("config", "config.json", "path to config file")
	speed := flag.Float64("speed", 1, "playback speed, 2 runs the sequence twice as fast")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := checkSpeed(*speed); err != nil {
		sugar.Fatalw("invalid flag",
			"err", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			sugar.Fatalw("unable to load config",
				"path", *configPath,
				"err", err)
		}
		sugar.Infow("using default configuration",
			"path", *configPath)
		cfg = config.DefaultConfig()
	}

	font, err := display.LoadFont(cfg)
	if err != nil {
		sugar.Fatalw("unable to load font",
			"err", err)
	}

	d, err := display.Open(cfg, logger)
	if err != nil {
		sugar.Fatalw("unable to open display",
			"err", err)
	}

	pause := func(dur time.Duration) {
		time.Sleep(scale(dur, *speed))
	}
	err = run(d, font, pause, sugar)
	// Fatalw skips deferred calls, so the display is blanked and closed first
	if cerr := d.Close(); cerr != nil {
		sugar.Warnw("unable to close display",
			"err", cerr)
	}
	if err != nil {
		sugar.Fatalw("test sequence failed",
			"err", err)
	}
	fmt.Println("Test completed successfully")
}

// run shows every test pattern in turn
func run(d *ledmatrix.Display, font *sprite.Font, pause func(time.Duration), sugar *zap.SugaredLogger) error {
	if n := d.Topology().NumElements(); n < 3 {
		return fmt.Errorf("test patterns need at least three elements, have %d", n)
	}

	show := func(name string, draw func(fb *ledmatrix.FrameBuffer) error) error {
		if err := draw(d.FrameBuffer); err != nil {
			return fmt.Errorf("unable to draw %s: %w", name, err)
		}
		if err := d.Show(); err != nil {
			return fmt.Errorf("unable to show %s: %w", name, err)
		}
		return nil
	}

	// Number the elements
	sugar.Info("numbering elements")
	if err := show("numbers", func(fb *ledmatrix.FrameBuffer) error {
		return numberElements(fb, font)
	}); err != nil {
		return err
	}
	pause(3 * time.Second)

	// Brightness ramp
	sugar.Info("brightness ramp")
	for level := ledcolor.Off; level <= ledcolor.Max; level++ {
		if err := show("brightness", func(fb *ledmatrix.FrameBuffer) error {
			return brightness(fb, level)
		}); err != nil {
			return err
		}
		pause(250 * time.Millisecond)
	}

	// Horizontal line moving down
	sugar.Info("sweeping line")
	for y := ledmatrix.ElementSize - 1; y >= 0; y-- {
		if err := show("sweep", func(fb *ledmatrix.FrameBuffer) error {
			return sweep(fb, y)
		}); err != nil {
			return err
		}
		pause(500 * time.Millisecond)
	}

	sugar.Info("hash")
	if err := show("hash", func(fb *ledmatrix.FrameBuffer) error {
		return hash(fb, false)
	}); err != nil {
		return err
	}
	pause(2 * time.Second)

	sugar.Info("inverted hash")
	if err := show("inverted hash", func(fb *ledmatrix.FrameBuffer) error {
		return hash(fb, true)
	}); err != nil {
		return err
	}
	pause(2 * time.Second)
	return nil
}
