package dashboard

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// streamMessage is one frame pushed on /ws/positions.
type streamMessage struct {
	Type      string             `json:"type"`
	Time      time.Time          `json:"time"`
	Positions *positionsResponse `json:"positions,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// handleStream pushes the filtered position view on every tick until the client goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	filter := s.requestFilter(r)
	interval := s.streamInterval(r)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))

		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// reads only detect the close; clients send nothing
	go func() {
		defer cancel()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	s.log.Debug("position stream opened",
		zap.String("filter", filter.Comment),
		zap.Bool("enabled", filter.Enabled),
		zap.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.pushPositions(ctx, conn, filter); err != nil {
			s.log.Debug("position stream closed", zap.Error(err))

			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) pushPositions(ctx context.Context, conn *websocket.Conn, filter trading.Filter) error {
	message := streamMessage{Type: "positions", Time: time.Now().UTC(), Positions: nil, Error: ""}

	view, err := s.desk.Positions(ctx, filter)
	if err != nil {
		message.Type = "error"
		message.Error = errors.Message(err)
	} else {
		response := newPositionsResponse(view)
		message.Positions = &response
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return conn.WriteJSON(message)
}

// streamInterval picks the push period: the interval query parameter, then the
// server option, then the session refresh interval.
func (s *Server) streamInterval(r *http.Request) time.Duration {
	if seconds, err := strconv.Atoi(r.URL.Query().Get("interval")); err == nil && config.ValidRefreshInterval(seconds) {
		return time.Duration(seconds) * time.Second
	}

	if s.options.StreamInterval > 0 {
		return s.options.StreamInterval
	}

	if session, ok := s.sessions.Lookup(r); ok {
		if seconds := s.sessions.Snapshot(session).RefreshInterval; config.ValidRefreshInterval(seconds) {
			return time.Duration(seconds) * time.Second
		}
	}

	return config.DefaultRefreshInterval * time.Second
}
