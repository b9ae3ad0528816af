package dashboard

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
)

// SessionCookie names the cookie holding the browser session id.
const SessionCookie = "mt5_dashboard_session"

// OrderForm is what the trading panel was last submitted with.
type OrderForm struct {
	Symbol         string
	Volume         float64
	StopLossPips   int
	TakeProfitPips int
	Comment        string
}

// ConnectForm is what the sidebar was last submitted with. The password is never kept.
type ConnectForm struct {
	Login  int64
	Server string
}

// Session is per-browser UI memory. It lives only in process memory.
type Session struct {
	ID              string
	Filter          trading.Filter
	AutoRefresh     bool
	RefreshInterval int
	Order           OrderForm
	Connect         ConnectForm
	flashes         []trading.Notice
	lastSeen        time.Time
}

// SessionDefaults seeds new sessions.
type SessionDefaults struct {
	Symbol          string
	Volume          float64
	Comment         string
	AutoRefresh     bool
	RefreshInterval int
	Login           int64
	Server          string
}

// SessionStore keeps sessions keyed by cookie id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	defaults SessionDefaults
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store. Sessions idle for longer than ttl are dropped.
func NewSessionStore(defaults SessionDefaults, ttl time.Duration) *SessionStore {
	if defaults.Comment == "" {
		defaults.Comment = types.DefaultComment
	}

	if defaults.Volume <= 0 {
		defaults.Volume = 0.1
	}

	return &SessionStore{
		mu:       sync.Mutex{},
		sessions: make(map[string]*Session),
		defaults: defaults,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) newSession() *Session {
	return &Session{
		ID:              uuid.NewString(),
		Filter:          trading.Filter{Enabled: false, Comment: s.defaults.Comment},
		AutoRefresh:     s.defaults.AutoRefresh,
		RefreshInterval: s.defaults.RefreshInterval,
		Order: OrderForm{
			Symbol:         s.defaults.Symbol,
			Volume:         s.defaults.Volume,
			StopLossPips:   0,
			TakeProfitPips: 0,
			Comment:        s.defaults.Comment,
		},
		Connect: ConnectForm{
			Login:  s.defaults.Login,
			Server: s.defaults.Server,
		},
		flashes:  nil,
		lastSeen: s.now(),
	}
}

// Get returns the session for r, creating one and setting the cookie when needed.
func (s *SessionStore) Get(w http.ResponseWriter, r *http.Request) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if session, ok := s.sessions[cookie.Value]; ok {
			session.lastSeen = s.now()

			return session
		}
	}

	session := s.newSession()
	s.sessions[session.ID] = session

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return session
}

// Lookup returns the session for r without creating one.
func (s *SessionStore) Lookup(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[cookie.Value]

	return session, ok
}

// Update runs fn with the store locked so handlers can mutate a session safely.
func (s *SessionStore) Update(session *Session, fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(session)
}

// Snapshot returns a copy of session taken under the store lock.
func (s *SessionStore) Snapshot(session *Session) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *session
	snapshot.flashes = append([]trading.Notice(nil), session.flashes...)

	return snapshot
}

// Flash queues notices to be shown on the next render.
func (s *SessionStore) Flash(session *Session, notices ...trading.Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.flashes = append(session.flashes, notices...)
}

// TakeFlashes returns and clears the queued notices.
func (s *SessionStore) TakeFlashes(session *Session) []trading.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	flashes := session.flashes
	session.flashes = nil

	return flashes
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

func (s *SessionStore) expireLocked() {
	if s.ttl <= 0 {
		return
	}

	cutoff := s.now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
