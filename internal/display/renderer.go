package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fkcurrie/ledchain-golang/internal/types"
	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
)

var metricFramesShown = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ledchain_frames_shown_total",
	Help: "The total number of frames flushed to the chain",
})

var metricFlushErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ledchain_flush_errors_total",
	Help: "The total number of frames the transport failed to flush",
})

var metricFlushTime = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "ledchain_flush_duration_seconds",
	Help:    "How long it takes to pack and flush one frame",
	Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
})

var metricScrollWraps = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ledchain_scroll_wraps_total",
	Help: "How many times scrolling text has wrapped around",
})

// ErrNoFont is returned by SetText when the renderer has no font
var ErrNoFont = errors.New("no font loaded")

// Options configures a Renderer
type Options struct {
	// Interval is the refresh period
	Interval time.Duration

	// ScrollInterval is the time per scrolled column
	ScrollInterval time.Duration

	// Spacing is the gap between characters in pixels
	Spacing int
	Logger  *zap.SugaredLogger
}

// Renderer owns a display and serializes every access to it. Changes are
// flushed to the chain on the next tick.
type Renderer struct {
	mu      sync.Mutex
	display *ledmatrix.Display
	font    *sprite.Font
	opts    Options
	logger  *zap.SugaredLogger

	text       string
	textSprite *sprite.Sprite
	origin     image.Point
	scroll     bool
	lastScroll time.Time

	dirty       bool
	frames      uint64
	lastUpdated time.Time

	subs map[chan types.Frame]struct{}
}

// NewRenderer creates a new renderer instance
func NewRenderer(d *ledmatrix.Display, font *sprite.Font, opts Options) *Renderer {
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	if opts.ScrollInterval <= 0 {
		opts.ScrollInterval = 100 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Renderer{
		display: d,
		font:    font,
		opts:    opts,
		logger:  logger,
		subs:    make(map[chan types.Frame]struct{}),
	}
}

// Start refreshes the display until ctx is cancelled
func (r *Renderer) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if err := r.render(now); err != nil {
				r.logger.Warnw("failed to render",
					"err", err)
			}
		}
	}
}

// render advances scrolling text and flushes the frame if anything changed
func (r *Renderer) render(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.scroll && now.Sub(r.lastScroll) >= r.opts.ScrollInterval {
		r.lastScroll = now
		r.origin.X--
		if r.origin.X+r.textSprite.Width() < 0 {
			r.origin.X = r.display.Width()
			metricScrollWraps.Inc()
		}
		r.display.Erase()
		r.display.Blit(r.textSprite, r.origin)
		r.dirty = true
	}

	if !r.dirty {
		return nil
	}
	r.dirty = false

	start := time.Now()
	if err := r.display.Show(); err != nil {
		metricFlushErrors.Inc()
		return err
	}
	metricFlushTime.Observe(time.Since(start).Seconds())
	metricFramesShown.Inc()

	r.frames++
	r.lastUpdated = now
	r.publish()
	return nil
}

// SetText replaces the display contents with message. Scrolling text starts
// at origin and moves one column left per scroll interval, wrapping back in
// from the right edge.
func (r *Renderer) SetText(message string, c interface{}, origin image.Point, scroll bool) error {
	if r.font == nil {
		return ErrNoFont
	}
	s, err := sprite.ComposeText(message, r.font, r.opts.Spacing)
	if err != nil {
		return err
	}
	if s, err = s.Recolor(c); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.text = strings.TrimSpace(message)
	r.textSprite = s
	r.origin = origin
	r.scroll = scroll && !s.Empty()
	r.lastScroll = time.Time{}
	r.display.Erase()
	r.display.Blit(s, origin)
	r.dirty = true

	r.logger.Debugw("text set",
		"text", r.text,
		"width", s.Width(),
		"scroll", r.scroll)
	return nil
}

// Draw runs fn against the frame buffer. Scrolling stops so the drawing is
// not overwritten.
func (r *Renderer) Draw(fn func(fb *ledmatrix.FrameBuffer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scroll = false
	if err := fn(r.display.FrameBuffer); err != nil {
		return err
	}
	r.dirty = true
	return nil
}

// Erase clears the display and any text
func (r *Renderer) Erase() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.text = ""
	r.textSprite = nil
	r.scroll = false
	r.display.Erase()
	r.dirty = true
}

// Snapshot returns the current frame buffer contents
func (r *Renderer) Snapshot() types.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.frame()
}

// Status reports what the renderer is showing
func (r *Renderer) Status() types.Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	top := r.display.Topology()
	return types.Status{
		Status:      "ok",
		Elements:    top.NumElements(),
		Width:       top.Width(),
		Height:      top.Height(),
		Text:        r.text,
		Frames:      r.frames,
		LastUpdated: r.lastUpdated,
	}
}

// Subscribe returns a channel receiving every flushed frame. Slow
// subscribers miss frames. Call cancel to unsubscribe.
func (r *Renderer) Subscribe() (frames <-chan types.Frame, cancel func()) {
	ch := make(chan types.Frame, 4)

	r.mu.Lock()
	r.subs[ch] = struct{}{}
	r.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, ch)
			r.mu.Unlock()
		})
	}
}

// Close turns the chain off and releases the transport
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scroll = false
	if err := r.display.Close(); err != nil {
		return fmt.Errorf("failed to close display: %w", err)
	}
	return nil
}

// publish sends the current frame to subscribers; r.mu must be held
func (r *Renderer) publish() {
	if len(r.subs) == 0 {
		return
	}
	f := r.frame()
	for ch := range r.subs {
		select {
		case ch <- f:
		default:
			// Subscriber is behind, skip this frame
		}
	}
}

// frame converts the frame buffer; r.mu must be held
func (r *Renderer) frame() types.Frame {
	cells := r.display.Snapshot()
	rows := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteString(c.String())
		}
		rows[y] = b.String()
	}
	return types.Frame{
		Width:     r.display.Width(),
		Height:    r.display.Height(),
		Rows:      rows,
		Sequence:  r.frames,
		Timestamp: r.lastUpdated,
	}
}
