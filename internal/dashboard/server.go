// Package dashboard serves the single-page trading dashboard over HTTP.
package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configure the dashboard server.
type Options struct {
	Defaults   SessionDefaults
	SessionTTL time.Duration
	// StreamInterval overrides the websocket push period. Zero uses the session refresh interval.
	StreamInterval time.Duration
	Version        string
}

// Server is the dashboard HTTP server.
type Server struct {
	desk     *trading.Desk
	sessions *SessionStore
	options  Options
	log      *logger.Logger
	page     *template.Template
	upgrader websocket.Upgrader

	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a dashboard over desk.
func NewServer(desk *trading.Desk, options Options, log *logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}

	if options.SessionTTL == 0 {
		options.SessionTTL = 12 * time.Hour
	}

	if !config.ValidRefreshInterval(options.Defaults.RefreshInterval) {
		options.Defaults.RefreshInterval = config.DefaultRefreshInterval
	}

	page, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Server{
		desk:     desk,
		sessions: NewSessionStore(options.Defaults, options.SessionTTL),
		options:  options,
		log:      log,
		page:     page,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		httpServer: nil,
		listener:   nil,
	}, nil
}

// Router returns the dashboard routes.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", s.handleIndex).Methods("GET")
	router.HandleFunc("/connect", s.handleConnect).Methods("POST")
	router.HandleFunc("/disconnect", s.handleDisconnect).Methods("POST")
	router.HandleFunc("/orders/buy", s.handleOrder(sideBuy)).Methods("POST")
	router.HandleFunc("/orders/sell", s.handleOrder(sideSell)).Methods("POST")
	router.HandleFunc("/positions/close-all", s.handleCloseAll).Methods("POST")
	router.HandleFunc("/positions/{ticket:[0-9]+}/close", s.handleClose).Methods("POST")
	router.HandleFunc("/filter", s.handleFilter).Methods("POST")
	router.HandleFunc("/refresh", s.handleRefresh).Methods("POST")

	router.HandleFunc("/api/status", s.handleAPIStatus).Methods("GET")
	router.HandleFunc("/api/positions", s.handleAPIPositions).Methods("GET")
	router.HandleFunc("/ws/positions", s.handleStream).Methods("GET")
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	router.Use(s.logRequests)

	return router
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Start listens on address and serves in the background.
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			s.log.Error("dashboard server stopped", zap.Error(err))
		}
	}()

	s.log.Info("dashboard listening", zap.String("address", listener.Addr().String()))

	return nil
}

// Run serves on address until ctx is cancelled.
func (s *Server) Run(ctx context.Context, address string) error {
	if err := s.Start(address); err != nil {
		return err
	}

	<-ctx.Done()

	return s.Stop()
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// websocket upgrades need the raw writer for hijacking
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)

			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
