package terminal

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/internal/version"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request id the bridge echoes in its logs.
const RequestIDHeader = "X-Request-ID"

type okResponse struct {
	OK bool `json:"ok"`
}

type versionResponse struct {
	Version string `json:"version"`
}

type accountResponse struct {
	OK      bool               `json:"ok"`
	Account *types.AccountInfo `json:"account"`
}

type symbolResponse struct {
	OK     bool              `json:"ok"`
	Symbol *types.SymbolInfo `json:"symbol"`
}

type tickResponse struct {
	OK   bool        `json:"ok"`
	Tick *types.Tick `json:"tick"`
}

type orderResponse struct {
	OK     bool               `json:"ok"`
	Result *types.TradeResult `json:"result"`
}

type positionsResponse struct {
	OK        bool             `json:"ok"`
	Positions []types.Position `json:"positions"`
}

// BridgeClient implements Terminal against the bridge REST protocol.
type BridgeClient struct {
	client  *resty.Client
	baseURL string
	log     *logger.Logger
	onClose func() error
}

// NewBridgeClient creates a client for the bridge at config.BaseURL.
func NewBridgeClient(config BridgeConfig) *BridgeClient {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(config.Timeout()).
		SetHeader("Accept", "application/json")

	return &BridgeClient{
		client:  client,
		baseURL: baseURL,
		log:     logger.NewNop(),
		onClose: nil,
	}
}

// SetLogger sets the logger used for request tracing.
func (b *BridgeClient) SetLogger(log *logger.Logger) {
	if log != nil {
		b.log = log
	}
}

// BaseURL returns the bridge base URL.
func (b *BridgeClient) BaseURL() string {
	return b.baseURL
}

// CheckVersion verifies that the bridge speaks a compatible protocol.
func (b *BridgeClient) CheckVersion(ctx context.Context) error {
	remote, err := b.Version(ctx)
	if err != nil {
		return err
	}

	return version.CheckBridgeCompatibility(version.BridgeProtocol, remote)
}

// Close releases resources held by the client.
func (b *BridgeClient) Close() error {
	if b.onClose != nil {
		return b.onClose()
	}

	return nil
}

func (b *BridgeClient) Version(ctx context.Context) (string, error) {
	var out versionResponse
	if err := b.do(ctx, resty.MethodGet, "/version", nil, nil, &out); err != nil {
		return "", err
	}

	return out.Version, nil
}

func (b *BridgeClient) Initialize(ctx context.Context) (bool, error) {
	var out okResponse
	if err := b.do(ctx, resty.MethodPost, "/initialize", nil, map[string]any{"path": ""}, &out); err != nil {
		return false, err
	}

	return out.OK, nil
}

func (b *BridgeClient) Login(ctx context.Context, credentials types.Credentials) (bool, error) {
	var out okResponse

	body := map[string]any{
		"login":    credentials.Login,
		"password": credentials.Password,
		"server":   credentials.Server,
	}

	if err := b.do(ctx, resty.MethodPost, "/login", nil, body, &out); err != nil {
		return false, err
	}

	return out.OK, nil
}

func (b *BridgeClient) Shutdown(ctx context.Context) error {
	var out okResponse

	return b.do(ctx, resty.MethodPost, "/shutdown", nil, map[string]any{}, &out)
}

func (b *BridgeClient) LastError(ctx context.Context) (types.TerminalError, error) {
	var out types.TerminalError
	if err := b.do(ctx, resty.MethodGet, "/last-error", nil, nil, &out); err != nil {
		return types.TerminalError{}, err
	}

	return out, nil
}

func (b *BridgeClient) AccountInfo(ctx context.Context) (*types.AccountInfo, error) {
	var out accountResponse
	if err := b.do(ctx, resty.MethodGet, "/account", nil, nil, &out); err != nil {
		return nil, err
	}

	if !out.OK {
		return nil, nil
	}

	return out.Account, nil
}

func (b *BridgeClient) SymbolInfo(ctx context.Context, symbol string) (*types.SymbolInfo, error) {
	var out symbolResponse
	if err := b.do(ctx, resty.MethodGet, "/symbols/{symbol}", symbolParams(symbol), nil, &out); err != nil {
		return nil, err
	}

	if !out.OK {
		return nil, nil
	}

	return out.Symbol, nil
}

func (b *BridgeClient) SymbolSelect(ctx context.Context, symbol string, enable bool) (bool, error) {
	var out okResponse
	if err := b.do(ctx, resty.MethodPost, "/symbols/{symbol}/select", symbolParams(symbol), map[string]any{"enable": enable}, &out); err != nil {
		return false, err
	}

	return out.OK, nil
}

func (b *BridgeClient) SymbolInfoTick(ctx context.Context, symbol string) (*types.Tick, error) {
	var out tickResponse
	if err := b.do(ctx, resty.MethodGet, "/symbols/{symbol}/tick", symbolParams(symbol), nil, &out); err != nil {
		return nil, err
	}

	if !out.OK {
		return nil, nil
	}

	return out.Tick, nil
}

func (b *BridgeClient) OrderSend(ctx context.Context, request types.TradeRequest) (*types.TradeResult, error) {
	var out orderResponse
	if err := b.do(ctx, resty.MethodPost, "/orders", nil, request, &out); err != nil {
		return nil, err
	}

	if !out.OK {
		return nil, nil
	}

	return out.Result, nil
}

func (b *BridgeClient) PositionsGet(ctx context.Context) ([]types.Position, error) {
	var out positionsResponse
	if err := b.do(ctx, resty.MethodGet, "/positions", nil, nil, &out); err != nil {
		return nil, err
	}

	if !out.OK {
		return nil, nil
	}

	if out.Positions == nil {
		return []types.Position{}, nil
	}

	return out.Positions, nil
}

func (b *BridgeClient) do(ctx context.Context, method, path string, params map[string]string, body any, out any) error {
	requestID := uuid.NewString()
	resolved := resolvePath(path, params)

	req := b.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		SetResult(out)

	if params != nil {
		req.SetPathParams(params)
	}

	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		b.log.Debug("bridge request failed",
			zap.String("method", method),
			zap.String("path", resolved),
			zap.String("request_id", requestID),
			zap.Error(err),
		)

		return errors.Wrapf(errors.ErrCodeTerminalUnavailable, err, "terminal bridge unreachable at %s", b.baseURL)
	}

	if resp.IsError() {
		return errors.Newf(errors.ErrCodeTerminalUnavailable, "terminal bridge returned %d for %s %s: %s",
			resp.StatusCode(), method, resolved, strings.TrimSpace(resp.String()))
	}

	b.log.Debug("bridge request",
		zap.String("method", method),
		zap.String("path", resolved),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode()),
	)

	return nil
}

// resolvePath fills {name} placeholders the way resty escapes path params.
func resolvePath(path string, params map[string]string) string {
	for name, value := range params {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}

	return path
}

func symbolParams(symbol string) map[string]string {
	return map[string]string{"symbol": symbol}
}

var _ Terminal = (*BridgeClient)(nil)
