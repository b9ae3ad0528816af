package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
)

// OrderType is the terminal's numeric order type.
type OrderType int

// TradeAction is the terminal's numeric trade request action.
type TradeAction int

// OrderTime is the order lifetime policy.
type OrderTime int

// OrderFilling is the order filling policy.
type OrderFilling int

const (
	OrderTypeBuy  OrderType = 0
	OrderTypeSell OrderType = 1
)

const (
	// TradeActionDeal places a market order for immediate execution.
	TradeActionDeal TradeAction = 1
)

const (
	OrderTimeGTC OrderTime = 0
)

const (
	OrderFillingFOK    OrderFilling = 0
	OrderFillingIOC    OrderFilling = 1
	OrderFillingReturn OrderFilling = 2
)

const (
	// RetcodeDone is the only return code that means the request was executed.
	RetcodeDone = 10009
)

const (
	// DefaultDeviation is the maximum accepted price slippage in points.
	DefaultDeviation = 20
	// DefaultMagic tags every request sent by the dashboard.
	DefaultMagic int64 = 234000
	// DefaultComment is the initial comment tag for new orders.
	DefaultComment = "Dashboard Trade"
	// MinVolume is the smallest lot size the order form accepts.
	MinVolume = 0.01
)

// String returns BUY or SELL.
func (t OrderType) String() string {
	switch t {
	case OrderTypeBuy:
		return "BUY"
	case OrderTypeSell:
		return "SELL"
	default:
		return fmt.Sprintf("TYPE_%d", int(t))
	}
}

// Opposite returns the order type that closes a position of type t.
func (t OrderType) Opposite() OrderType {
	if t == OrderTypeBuy {
		return OrderTypeSell
	}

	return OrderTypeBuy
}

// ParseOrderType parses "buy"/"BUY"/"sell"/"SELL".
func ParseOrderType(s string) (OrderType, error) {
	switch s {
	case "buy", "BUY":
		return OrderTypeBuy, nil
	case "sell", "SELL":
		return OrderTypeSell, nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported order side: %s", s)
	}
}

// ParseOrderFilling parses a filling policy name.
func ParseOrderFilling(s string) (OrderFilling, error) {
	switch s {
	case "FOK", "fok":
		return OrderFillingFOK, nil
	case "IOC", "ioc", "":
		return OrderFillingIOC, nil
	case "RETURN", "return":
		return OrderFillingReturn, nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported filling mode: %s", s)
	}
}

// TradeRequest is the payload of an order_send call.
type TradeRequest struct {
	Action      TradeAction  `json:"action" yaml:"action"`
	Symbol      string       `json:"symbol" yaml:"symbol"`
	Volume      float64      `json:"volume" yaml:"volume"`
	Type        OrderType    `json:"type" yaml:"type"`
	Position    uint64       `json:"position,omitempty" yaml:"position,omitempty"`
	Price       float64      `json:"price" yaml:"price"`
	SL          float64      `json:"sl" yaml:"sl"`
	TP          float64      `json:"tp" yaml:"tp"`
	Deviation   int          `json:"deviation" yaml:"deviation"`
	Magic       int64        `json:"magic" yaml:"magic"`
	Comment     string       `json:"comment" yaml:"comment"`
	TypeTime    OrderTime    `json:"type_time" yaml:"type_time"`
	TypeFilling OrderFilling `json:"type_filling" yaml:"type_filling"`
}

// TradeResult is the terminal's answer to an order_send call.
type TradeResult struct {
	Retcode   int     `json:"retcode" yaml:"retcode"`
	Deal      uint64  `json:"deal" yaml:"deal"`
	Order     uint64  `json:"order" yaml:"order"`
	Volume    float64 `json:"volume" yaml:"volume"`
	Price     float64 `json:"price" yaml:"price"`
	Bid       float64 `json:"bid" yaml:"bid"`
	Ask       float64 `json:"ask" yaml:"ask"`
	Comment   string  `json:"comment" yaml:"comment"`
	RequestID uint32  `json:"request_id" yaml:"request_id"`
}

// Done reports whether the request was executed.
func (r *TradeResult) Done() bool {
	return r != nil && r.Retcode == RetcodeDone
}

// OrderTicket is what the user fills in on the trading panel.
type OrderTicket struct {
	Side           OrderType `json:"side" yaml:"side" validate:"oneof=0 1"`
	Symbol         string    `json:"symbol" yaml:"symbol" validate:"required"`
	Volume         float64   `json:"volume" yaml:"volume" validate:"gte=0.01"`
	StopLossPips   int       `json:"stop_loss_pips" yaml:"stop_loss_pips" validate:"gte=0"`
	TakeProfitPips int       `json:"take_profit_pips" yaml:"take_profit_pips" validate:"gte=0"`
	Comment        string    `json:"comment" yaml:"comment"`
}

// Validate validates the OrderTicket struct.
func (t *OrderTicket) Validate() error {
	validate := validator.New()
	if err := validate.Struct(t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrderTicket, "invalid order ticket", err)
	}

	return nil
}
