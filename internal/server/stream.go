package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fkcurrie/ledchain-golang/internal/types"
)

// stream upgrades to a websocket and sends every flushed frame as JSON,
// starting with the current one
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debugw("unable to upgrade websocket",
			"remote", r.RemoteAddr,
			"err", err)
		return
	}

	frames, cancel := s.renderer.Subscribe()
	defer cancel()

	metricStreamClients.Inc()
	defer metricStreamClients.Dec()
	s.logger.Debugw("stream client connected",
		"remote", r.RemoteAddr)

	closed := make(chan struct{})
	go s.readPump(conn, closed)
	s.writePump(conn, frames, closed)

	s.logger.Debugw("stream client disconnected",
		"remote", r.RemoteAddr)
}

// readPump discards client messages and keeps the read deadline fresh. It
// closes done when the client goes away.
func (s *Server) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warnw("stream read failed",
					"err", err)
			}
			return
		}
	}
}

// writePump sends frames and pings until the client goes away
func (s *Server) writePump(conn *websocket.Conn, frames <-chan types.Frame, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(s.renderer.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case <-done:
			return
		case f := <-frames:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
