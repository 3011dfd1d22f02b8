// Package server exposes the renderer over HTTP: drawing endpoints, frame
// previews, a websocket frame stream and Prometheus metrics.
package server

import (
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fkcurrie/ledchain-golang/internal/display"
	"github.com/fkcurrie/ledchain-golang/internal/types"
	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
	"github.com/fkcurrie/ledchain-golang/pkg/ledmatrix"
	"github.com/fkcurrie/ledchain-golang/pkg/sprite"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	// maxRequest bounds JSON request bodies
	maxRequest = 64 << 10
)

var metricRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ledchain_http_requests_total",
	Help: "The total number of API requests",
}, []string{"route", "code"})

var metricStreamClients = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "ledchain_stream_clients",
	Help: "The number of websocket clients receiving frames",
})

// Server serves the HTTP API for a renderer
type Server struct {
	renderer *display.Renderer
	logger   *zap.SugaredLogger
	router   *mux.Router
	upgrader websocket.Upgrader
}

// New creates a server with every route registered
func New(renderer *display.Renderer, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Server{
		renderer: renderer,
		logger:   logger,
		router:   mux.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	s.router.Use(corsMiddleware)
	s.router.Path("/health").Methods(http.MethodGet).HandlerFunc(s.health)
	s.router.Path("/metrics").Methods(http.MethodGet).Handler(promhttp.Handler())
	s.router.Path("/frame").Methods(http.MethodGet).HandlerFunc(s.frame)
	s.router.Path("/ws").HandlerFunc(s.stream)
	s.router.Path("/text").Methods(http.MethodPost).HandlerFunc(s.text)
	s.router.Path("/erase").Methods(http.MethodPost).HandlerFunc(s.erase)
	s.router.Path("/point").Methods(http.MethodPost).HandlerFunc(s.point)
	s.router.Path("/line").Methods(http.MethodPost).HandlerFunc(s.line)
	s.router.Path("/rect").Methods(http.MethodPost).HandlerFunc(s.rect)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.renderer.Status())
}

func (s *Server) frame(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.renderer.Snapshot())
}

func (s *Server) text(w http.ResponseWriter, r *http.Request) {
	var req types.TextRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.renderer.SetText(req.Text, colorOrMax(req.Color), image.Pt(req.X, req.Y), req.Scroll)
	s.reply(w, r, err)
}

func (s *Server) erase(w http.ResponseWriter, r *http.Request) {
	s.renderer.Erase()
	s.reply(w, r, nil)
}

func (s *Server) point(w http.ResponseWriter, r *http.Request) {
	var req types.PointRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.renderer.Draw(func(fb *ledmatrix.FrameBuffer) error {
		return fb.Point(req.X, req.Y, colorOrMax(req.Color))
	})
	s.reply(w, r, err)
}

func (s *Server) line(w http.ResponseWriter, r *http.Request) {
	var req types.LineRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.renderer.Draw(func(fb *ledmatrix.FrameBuffer) error {
		return fb.Line(image.Pt(req.X0, req.Y0), image.Pt(req.X1, req.Y1), colorOrMax(req.Color))
	})
	s.reply(w, r, err)
}

func (s *Server) rect(w http.ResponseWriter, r *http.Request) {
	var req types.RectRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.renderer.Draw(func(fb *ledmatrix.FrameBuffer) error {
		return fb.Rect(image.Pt(req.X, req.Y), image.Pt(req.Width, req.Height), colorOrMax(req.Color), req.Fill)
	})
	s.reply(w, r, err)
}

// colorOrMax returns the requested color symbol, full brightness when the
// request leaves it out
func colorOrMax(c string) string {
	if c == "" {
		return ledcolor.Max.String()
	}
	return c
}

// decode reads a JSON body into v, answering 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequest))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.logger.Debugw("unable to decode request",
			"path", r.URL.Path,
			"err", err)
		s.writeJSON(w, r, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return false
	}
	return true
}

// reply answers with the current frame, or with the status code for err
func (s *Server) reply(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		code := statusCode(err)
		s.logger.Debugw("request failed",
			"path", r.URL.Path,
			"code", code,
			"err", err)
		s.writeJSON(w, r, code, types.ErrorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, r, http.StatusOK, s.renderer.Snapshot())
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, ledcolor.ErrInvalidColor),
		errors.Is(err, ledmatrix.ErrOutOfBounds),
		errors.Is(err, sprite.ErrInvalidCharacter),
		errors.Is(err, sprite.ErrGlyphNotFound),
		errors.Is(err, sprite.ErrGlyphHeightMismatch),
		errors.Is(err, sprite.ErrInvalidSize):
		return http.StatusBadRequest
	case errors.Is(err, display.ErrNoFont):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	route := r.URL.Path
	if m := mux.CurrentRoute(r); m != nil {
		if tpl, err := m.GetPathTemplate(); err == nil {
			route = tpl
		}
	}
	metricRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warnw("unable to write response",
			"path", r.URL.Path,
			"err", err)
	}
}
