// Package mockbridge provides a mock MT5 terminal bridge for testing and demo use.
// It implements the bridge REST protocol with in-memory accounts, symbols and positions.
package mockbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/internal/version"
)

// Terminal error codes reported through /last-error.
const (
	ErrCodeSuccess          = 1
	ErrCodeNotFound         = -4
	ErrCodeAuthFailed       = -6
	ErrCodeInternalFailInit = -10005
	ErrCodeNoIPC            = -10004
)

// Trade return codes used by the mock.
const (
	RetcodeRejected       = 10006
	RetcodeInvalid        = 10013
	RetcodeInvalidVolume  = 10014
	RetcodeMarketClosed   = 10018
	RetcodePositionClosed = 10036
)

// DefaultContractSize is used when a symbol does not set one.
const DefaultContractSize = 100000

// Account is a trading account the mock accepts logins for.
type Account struct {
	Login    int64
	Password string
	Server   string
	Name     string
	Currency string
	Balance  float64
}

// SymbolConfig seeds a symbol with its quote.
type SymbolConfig struct {
	Info types.SymbolInfo
	Bid  float64
	Ask  float64
}

// ServerConfig holds configuration for the mock server.
type ServerConfig struct {
	// Version is reported on /version; defaults to the supported protocol.
	Version  string
	Accounts []Account
	Symbols  []SymbolConfig
	// DriftInterval, when set, moves every quote by a random number of points
	// on each interval so that floating profit changes in demo mode.
	DriftInterval time.Duration
	// DriftPoints is the maximum move per interval in points.
	DriftPoints int
	Seed        int64
}

type rejection struct {
	retcode int
	comment string
}

// Server provides a mock terminal bridge.
type Server struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener

	version     string
	initialized bool
	current     *Account
	lastError   types.TerminalError

	accounts  map[int64]*Account
	symbols   map[string]*SymbolConfig
	positions map[uint64]*types.Position
	overrides map[uint64]float64
	requests  []types.TradeRequest
	ticketSeq uint64

	failInitialize bool
	failNextSend   bool
	rejectNext     *rejection

	driftInterval time.Duration
	driftPoints   int
	rng           *rand.Rand
	stopDrift     chan struct{}
	stopOnce      sync.Once
}

// NewServer creates a new mock bridge server.
func NewServer(config ServerConfig) *Server {
	server := &Server{
		mu:            sync.RWMutex{},
		version:       config.Version,
		lastError:     types.TerminalError{Code: ErrCodeSuccess, Message: "Success"},
		accounts:      make(map[int64]*Account),
		symbols:       make(map[string]*SymbolConfig),
		positions:     make(map[uint64]*types.Position),
		overrides:     make(map[uint64]float64),
		requests:      make([]types.TradeRequest, 0),
		ticketSeq:     100000,
		driftInterval: config.DriftInterval,
		driftPoints:   config.DriftPoints,
		rng:           rand.New(rand.NewSource(config.Seed)),
		stopDrift:     make(chan struct{}),
		httpServer:    nil,
		listener:      nil,
	}

	if server.version == "" {
		server.version = version.BridgeProtocol
	}

	if server.driftPoints == 0 {
		server.driftPoints = 5
	}

	for i := range config.Accounts {
		account := config.Accounts[i]
		server.accounts[account.Login] = &account
	}

	for i := range config.Symbols {
		symbol := config.Symbols[i]
		if symbol.Info.TradeContractSize == 0 {
			symbol.Info.TradeContractSize = DefaultContractSize
		}

		server.symbols[symbol.Info.Name] = &symbol
	}

	return server
}

// Start starts the mock server on the given address.
// If address is empty or ":0", a random available port is used.
func (s *Server) Start(address string) error {
	if address == "" {
		address = "127.0.0.1:0"
	}

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
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	if s.driftInterval > 0 {
		go s.drift()
	}

	return nil
}

// Router returns the bridge routes. Tests can mount it on httptest.Server.
func (s *Server) Router() http.Handler {
	// symbols such as XAU/USD arrive as XAU%2FUSD
	router := mux.NewRouter().UseEncodedPath()

	router.HandleFunc("/version", s.handleVersion).Methods("GET")
	router.HandleFunc("/initialize", s.handleInitialize).Methods("POST")
	router.HandleFunc("/login", s.handleLogin).Methods("POST")
	router.HandleFunc("/shutdown", s.handleShutdown).Methods("POST")
	router.HandleFunc("/last-error", s.handleLastError).Methods("GET")
	router.HandleFunc("/account", s.handleAccount).Methods("GET")
	router.HandleFunc("/symbols/{symbol}", s.handleSymbolInfo).Methods("GET")
	router.HandleFunc("/symbols/{symbol}/select", s.handleSymbolSelect).Methods("POST")
	router.HandleFunc("/symbols/{symbol}/tick", s.handleSymbolTick).Methods("GET")
	router.HandleFunc("/orders", s.handleOrderSend).Methods("POST")
	router.HandleFunc("/positions", s.handlePositions).Methods("GET")

	return router
}

// Stop stops the mock server.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() { close(s.stopDrift) })

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *Server) BaseURL() string {
	return "http://" + s.Address()
}

// SetTick sets the current quote for a symbol.
func (s *Server) SetTick(symbol string, bid, ask float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sym, ok := s.symbols[symbol]; ok {
		sym.Bid = bid
		sym.Ask = ask
	}
}

// RemoveQuote clears a symbol's quote so that tick requests return nothing.
func (s *Server) RemoveQuote(symbol string) {
	s.SetTick(symbol, 0, 0)
}

// HideSymbol removes a symbol from Market Watch.
func (s *Server) HideSymbol(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sym, ok := s.symbols[symbol]; ok {
		sym.Info.Visible = false
	}
}

// FailInitialize makes /initialize fail until reset.
func (s *Server) FailInitialize(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failInitialize = fail
}

// FailNextSend makes the next order send return no result.
func (s *Server) FailNextSend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextSend = true
}

// RejectNext makes the next order send return the given retcode.
func (s *Server) RejectNext(retcode int, comment string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectNext = &rejection{retcode: retcode, comment: comment}
}

// AddPosition seeds an open position. A zero ticket gets the next sequence number.
func (s *Server) AddPosition(position types.Position) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position.Ticket == 0 {
		s.ticketSeq++
		position.Ticket = s.ticketSeq
	}

	if position.Time.IsZero() {
		position.Time = time.Now()
	}

	s.positions[position.Ticket] = &position

	return position.Ticket
}

// SetPositionProfit pins the floating profit of a position.
func (s *Server) SetPositionProfit(ticket uint64, profit float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[ticket] = profit
}

// Positions returns a snapshot of the open positions ordered by ticket.
func (s *Server) Positions() []types.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotPositions()
}

// Requests returns every order request the server received.
func (s *Server) Requests() []types.TradeRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.TradeRequest, len(s.requests))
	copy(result, s.requests)

	return result
}

// Balance returns the balance of an account.
func (s *Server) Balance(login int64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if account, ok := s.accounts[login]; ok {
		return account.Balance
	}

	return 0
}

// IsLoggedIn reports whether a login is active.
func (s *Server) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current != nil
}

// REST API Handlers

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"version": s.version})
}

func (s *Server) handleInitialize(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failInitialize {
		s.lastError = types.TerminalError{Code: ErrCodeInternalFailInit, Message: "IPC initialize failed, MetaTrader 5 x64 not found"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	s.initialized = true
	s.lastError = types.TerminalError{Code: ErrCodeSuccess, Message: "Success"}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Login    int64  `json:"login"`
		Password string `json:"password"`
		Server   string `json:"server"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.lastError = types.TerminalError{Code: ErrCodeNoIPC, Message: "No IPC connection"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	account, ok := s.accounts[body.Login]
	if !ok || account.Password != body.Password || account.Server != body.Server {
		s.current = nil
		s.lastError = types.TerminalError{Code: ErrCodeAuthFailed, Message: "Terminal: Authorization failed"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	s.current = account
	s.lastError = types.TerminalError{Code: ErrCodeSuccess, Message: "Success"}
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleShutdown(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = false
	s.current = nil
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleLastError(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSON(w, s.lastError)
}

func (s *Server) handleAccount(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		s.lastError = types.TerminalError{Code: ErrCodeNoIPC, Message: "No IPC connection"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	floating := 0.0
	for _, p := range s.snapshotPositions() {
		floating += p.Profit
	}

	floating = round2(floating)

	writeJSON(w, map[string]any{
		"ok": true,
		"account": types.AccountInfo{
			Login:      s.current.Login,
			Balance:    s.current.Balance,
			Equity:     round2(s.current.Balance + floating),
			Profit:     floating,
			Margin:     0,
			MarginFree: round2(s.current.Balance + floating),
			Currency:   s.current.Currency,
			Server:     s.current.Server,
			Name:       s.current.Name,
		},
	})
}

func (s *Server) handleSymbolInfo(w http.ResponseWriter, r *http.Request) {
	name := symbolName(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	symbol, ok := s.symbols[name]
	if !ok {
		s.lastError = types.TerminalError{Code: ErrCodeNotFound, Message: "Terminal: Not found"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	writeJSON(w, map[string]any{"ok": true, "symbol": symbol.Info})
}

func (s *Server) handleSymbolSelect(w http.ResponseWriter, r *http.Request) {
	name := symbolName(r)

	var body struct {
		Enable bool `json:"enable"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	symbol, ok := s.symbols[name]
	if !ok {
		s.lastError = types.TerminalError{Code: ErrCodeNotFound, Message: "Terminal: Not found"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	symbol.Info.Visible = body.Enable
	writeJSON(w, map[string]any{"ok": true})
}

func (s *Server) handleSymbolTick(w http.ResponseWriter, r *http.Request) {
	name := symbolName(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	symbol, ok := s.symbols[name]
	if !ok || symbol.Bid == 0 || symbol.Ask == 0 {
		s.lastError = types.TerminalError{Code: ErrCodeNotFound, Message: "Terminal: Not found"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	writeJSON(w, map[string]any{
		"ok": true,
		"tick": types.Tick{
			Symbol: name,
			Bid:    symbol.Bid,
			Ask:    symbol.Ask,
			Time:   time.Now().UTC(),
		},
	})
}

func (s *Server) handleOrderSend(w http.ResponseWriter, r *http.Request) {
	var request types.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, request)

	if s.current == nil {
		s.lastError = types.TerminalError{Code: ErrCodeNoIPC, Message: "No IPC connection"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	if s.failNextSend {
		s.failNextSend = false
		s.lastError = types.TerminalError{Code: -2, Message: "Terminal: Invalid params"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	result := s.execute(request)
	writeJSON(w, map[string]any{"ok": true, "result": result})
}

func (s *Server) handlePositions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		s.lastError = types.TerminalError{Code: ErrCodeNoIPC, Message: "No IPC connection"}
		writeJSON(w, map[string]any{"ok": false})

		return
	}

	writeJSON(w, map[string]any{"ok": true, "positions": s.snapshotPositions()})
}

// execute applies a trade request to the in-memory book. Callers hold s.mu.
func (s *Server) execute(request types.TradeRequest) types.TradeResult {
	if s.rejectNext != nil {
		rejected := s.rejectNext
		s.rejectNext = nil

		return types.TradeResult{Retcode: rejected.retcode, Comment: rejected.comment}
	}

	symbol, ok := s.symbols[request.Symbol]
	if !ok || request.Action != types.TradeActionDeal {
		return types.TradeResult{Retcode: RetcodeInvalid, Comment: "Invalid request"}
	}

	if request.Volume <= 0 {
		return types.TradeResult{Retcode: RetcodeInvalidVolume, Comment: "Invalid volume"}
	}

	if symbol.Bid == 0 || symbol.Ask == 0 {
		return types.TradeResult{Retcode: RetcodeMarketClosed, Comment: "Market closed"}
	}

	price := symbol.Ask
	if request.Type == types.OrderTypeSell {
		price = symbol.Bid
	}

	s.ticketSeq++
	ticket := s.ticketSeq

	result := types.TradeResult{
		Retcode:   types.RetcodeDone,
		Deal:      ticket,
		Order:     ticket,
		Volume:    request.Volume,
		Price:     price,
		Bid:       symbol.Bid,
		Ask:       symbol.Ask,
		Comment:   "Request executed",
		RequestID: uint32(len(s.requests)),
	}

	if request.Position != 0 {
		position, ok := s.positions[request.Position]
		if !ok || position.Type == request.Type || position.Symbol != request.Symbol {
			return types.TradeResult{Retcode: RetcodePositionClosed, Comment: "Position doesn't exist"}
		}

		profit := s.profitOf(position)
		s.current.Balance = round2(s.current.Balance + profit)

		if request.Volume >= position.Volume {
			delete(s.positions, position.Ticket)
			delete(s.overrides, position.Ticket)
		} else {
			position.Volume = round2(position.Volume - request.Volume)
		}

		return result
	}

	s.positions[ticket] = &types.Position{
		Ticket:    ticket,
		Symbol:    request.Symbol,
		Type:      request.Type,
		Volume:    request.Volume,
		PriceOpen: price,
		SL:        request.SL,
		TP:        request.TP,
		Comment:   request.Comment,
		Magic:     request.Magic,
		Time:      time.Now().UTC(),
	}

	return result
}

// snapshotPositions copies positions with current prices and profit. Callers hold s.mu.
func (s *Server) snapshotPositions() []types.Position {
	result := make([]types.Position, 0, len(s.positions))

	for _, p := range s.positions {
		position := *p
		if symbol, ok := s.symbols[p.Symbol]; ok {
			position.PriceCurrent = symbol.Bid
			if p.Type == types.OrderTypeSell {
				position.PriceCurrent = symbol.Ask
			}
		}

		position.Profit = s.profitOf(p)
		result = append(result, position)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Ticket < result[j].Ticket })

	return result
}

// profitOf returns the floating profit of a position. Callers hold s.mu.
func (s *Server) profitOf(p *types.Position) float64 {
	if profit, ok := s.overrides[p.Ticket]; ok {
		return profit
	}

	symbol, ok := s.symbols[p.Symbol]
	if !ok || symbol.Bid == 0 || symbol.Ask == 0 {
		return 0
	}

	move := symbol.Bid - p.PriceOpen
	if p.Type == types.OrderTypeSell {
		move = p.PriceOpen - symbol.Ask
	}

	return round2(move * p.Volume * symbol.Info.TradeContractSize)
}

func (s *Server) drift() {
	ticker := time.NewTicker(s.driftInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopDrift:
			return
		case <-ticker.C:
			s.mu.Lock()
			for _, symbol := range s.symbols {
				if symbol.Bid == 0 {
					continue
				}

				step := float64(s.rng.Intn(2*s.driftPoints+1)-s.driftPoints) * symbol.Info.Point
				spread := symbol.Ask - symbol.Bid
				symbol.Bid = roundTo(symbol.Bid+step, symbol.Info.Digits)
				symbol.Ask = roundTo(symbol.Bid+spread, symbol.Info.Digits)
			}
			s.mu.Unlock()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func round2(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, digits int) float64 {
	multiplier := math.Pow10(digits)

	return math.Round(v*multiplier) / multiplier
}

// symbolName returns the decoded {symbol} path variable.
func symbolName(r *http.Request) string {
	name := mux.Vars(r)["symbol"]
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}

	return name
}
