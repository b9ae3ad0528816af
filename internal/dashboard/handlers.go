package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"go.uber.org/zap"
)

const (
	sideBuy  = types.OrderTypeBuy
	sideSell = types.OrderTypeSell
)

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func errorNotice(err error) trading.Notice {
	return trading.Notice{Level: trading.LevelError, Text: errors.Message(err)}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(w, r)
	flashes := s.sessions.TakeFlashes(session)
	data := s.buildPage(r, s.sessions.Snapshot(session), flashes)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := s.page.Execute(w, data); err != nil {
		s.log.Error("failed to render page", zap.Error(err))
	}
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(w, r)
	defer s.redirectHome(w, r)

	if err := r.ParseForm(); err != nil {
		s.sessions.Flash(session, errorNotice(err))

		return
	}

	login, err := parseLogin(r.PostFormValue("login"))
	if err != nil {
		s.sessions.Flash(session, errorNotice(err))

		return
	}

	credentials := types.Credentials{
		Login:    login,
		Password: r.PostFormValue("password"),
		Server:   strings.TrimSpace(r.PostFormValue("server")),
	}

	s.sessions.Update(session, func(session *Session) {
		session.Connect = ConnectForm{Login: credentials.Login, Server: credentials.Server}
	})

	result, err := s.desk.Connect(r.Context(), credentials)
	if err != nil {
		s.sessions.Flash(session, errorNotice(err))

		return
	}

	s.sessions.Flash(session, result.Notices()...)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(w, r)
	s.sessions.Flash(session, s.desk.Disconnect(r.Context()))
	s.redirectHome(w, r)
}

func (s *Server) handleOrder(side types.OrderType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := s.sessions.Get(w, r)
		defer s.redirectHome(w, r)

		if err := r.ParseForm(); err != nil {
			s.sessions.Flash(session, errorNotice(err))

			return
		}

		ticket, form, err := parseOrderForm(r, side)
		if err != nil {
			s.sessions.Flash(session, errorNotice(err))

			return
		}

		s.sessions.Update(session, func(session *Session) {
			session.Order = form
			// the last submitted comment becomes the filter comment
			if form.Comment != "" {
				session.Filter.Comment = form.Comment
			}
		})

		receipt, err := s.desk.PlaceOrder(r.Context(), ticket)
		if err != nil {
			s.sessions.Flash(session, errorNotice(err))

			return
		}

		s.sessions.Flash(session, receipt.Notices()...)
	}
}

func (s *Server) handleClose(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(w, r)
	defer s.redirectHome(w, r)

	ticket, err := strconv.ParseUint(mux.Vars(r)["ticket"], 10, 64)
	if err != nil {
		s.sessions.Flash(session, errorNotice(errors.New(errors.ErrCodeInvalidParameter, "invalid position ticket")))

		return
	}

	receipt, err := s.desk.ClosePosition(r.Context(), ticket)
	if err != nil {
		s.sessions.Flash(session, errorNotice(err))

		return
	}

	s.sessions.Flash(session, receipt.Notices()...)
}

func (s *Server) handleCloseAll(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(w, r)
	defer s.redirectHome(w, r)

	filter := s.sessions.Snapshot(session).Filter

	summary, err := s.desk.CloseAll(r.Context(), filter, nil)
	if err != nil {
		s.sessions.Flash(session, errorNotice(err))

		return
	}

	s.sessions.Flash(session, summary.Notices()...)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(w, r)
	defer s.redirectHome(w, r)

	if err := r.ParseForm(); err != nil {
		s.sessions.Flash(session, errorNotice(err))

		return
	}

	s.sessions.Update(session, func(session *Session) {
		session.Filter = trading.Filter{
			Enabled: r.PostFormValue("enabled") == "on",
			Comment: strings.TrimSpace(r.PostFormValue("comment")),
		}
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Get(w, r)
	defer s.redirectHome(w, r)

	if err := r.ParseForm(); err != nil {
		s.sessions.Flash(session, errorNotice(err))

		return
	}

	interval, err := strconv.Atoi(r.PostFormValue("interval"))
	if err != nil || !config.ValidRefreshInterval(interval) {
		interval = config.DefaultRefreshInterval
	}

	s.sessions.Update(session, func(session *Session) {
		session.AutoRefresh = r.PostFormValue("auto") == "on"
		session.RefreshInterval = interval
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	trading.Status
	Label   string `json:"label"`
	Version string `json:"version"`
}

type positionsResponse struct {
	View        *trading.PositionView `json:"view"`
	Caption     string                `json:"caption"`
	FilterText  string                `json:"filterNotice"`
	Notice      *trading.Notice       `json:"notice,omitempty"`
	TotalProfit string                `json:"totalProfitLabel"`
	InProfit    bool                  `json:"inProfit"`
	CanCloseAll bool                  `json:"canCloseAll"`
}

func newPositionsResponse(view *trading.PositionView) positionsResponse {
	response := positionsResponse{
		View:        view,
		Caption:     view.Caption(),
		FilterText:  view.Filter.Notice().Text,
		Notice:      nil,
		TotalProfit: view.ProfitLabel(),
		InProfit:    view.InProfit(),
		CanCloseAll: view.CanCloseAll(),
	}

	if notice, empty := view.Empty(); empty {
		response.Notice = &notice
	}

	return response
}

func (s *Server) handleAPIStatus(w http.ResponseWriter, r *http.Request) {
	status := s.desk.Status()
	s.writeJSON(w, http.StatusOK, statusResponse{Status: status, Label: status.Label(), Version: s.options.Version})
}

func (s *Server) handleAPIPositions(w http.ResponseWriter, r *http.Request) {
	filter := s.requestFilter(r)

	view, err := s.desk.Positions(r.Context(), filter)
	if err != nil {
		status := http.StatusBadGateway
		if errors.HasCode(err, errors.ErrCodeNotConnected) {
			status = http.StatusServiceUnavailable
		}

		s.writeJSON(w, status, errorResponse{Error: errors.Message(err)})

		return
	}

	s.writeJSON(w, http.StatusOK, newPositionsResponse(view))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"connected": s.desk.IsConnected(),
		"version":   s.options.Version,
	})
}

// requestFilter takes the filter from the query string when given, else from the session.
func (s *Server) requestFilter(r *http.Request) trading.Filter {
	query := r.URL.Query()

	if query.Has("comment") || query.Has("enabled") {
		enabled := true
		if value := query.Get("enabled"); value != "" {
			enabled, _ = strconv.ParseBool(value)
		}

		return trading.Filter{Enabled: enabled, Comment: query.Get("comment")}
	}

	if session, ok := s.sessions.Lookup(r); ok {
		return s.sessions.Snapshot(session).Filter
	}

	return trading.Filter{Enabled: false, Comment: ""}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func parseLogin(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	login, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidCredentials, "Login must be an account number")
	}

	return login, nil
}

func parseOrderForm(r *http.Request, side types.OrderType) (types.OrderTicket, OrderForm, error) {
	form := OrderForm{
		Symbol:         strings.ToUpper(strings.TrimSpace(r.PostFormValue("symbol"))),
		Volume:         0,
		StopLossPips:   0,
		TakeProfitPips: 0,
		Comment:        strings.TrimSpace(r.PostFormValue("comment")),
	}

	volume, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue("volume")), 64)
	if err != nil {
		return types.OrderTicket{}, form, errors.New(errors.ErrCodeInvalidOrderTicket, "Lots must be a number")
	}

	form.Volume = volume

	if form.StopLossPips, err = parsePips(r.PostFormValue("sl")); err != nil {
		return types.OrderTicket{}, form, err
	}

	if form.TakeProfitPips, err = parsePips(r.PostFormValue("tp")); err != nil {
		return types.OrderTicket{}, form, err
	}

	ticket := types.OrderTicket{
		Side:           side,
		Symbol:         form.Symbol,
		Volume:         form.Volume,
		StopLossPips:   form.StopLossPips,
		TakeProfitPips: form.TakeProfitPips,
		Comment:        form.Comment,
	}

	return ticket, form, nil
}

func parsePips(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	pips, err := strconv.Atoi(value)
	if err != nil || pips < 0 {
		return 0, errors.New(errors.ErrCodeInvalidOrderTicket, "Pips must be a whole number of at least 0")
	}

	return pips, nil
}
