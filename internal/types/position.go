package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Position is an open trade held by the broker account.
type Position struct {
	Ticket       uint64    `json:"ticket" yaml:"ticket"`
	Symbol       string    `json:"symbol" yaml:"symbol"`
	Type         OrderType `json:"type" yaml:"type"`
	Volume       float64   `json:"volume" yaml:"volume"`
	PriceOpen    float64   `json:"price_open" yaml:"price_open"`
	PriceCurrent float64   `json:"price_current" yaml:"price_current"`
	SL           float64   `json:"sl" yaml:"sl"`
	TP           float64   `json:"tp" yaml:"tp"`
	Profit       float64   `json:"profit" yaml:"profit"`
	Comment      string    `json:"comment" yaml:"comment"`
	Magic        int64     `json:"magic" yaml:"magic"`
	Time         time.Time `json:"time" yaml:"time"`
}

// StopLoss returns the stop loss level, None when not set.
func (p *Position) StopLoss() optional.Option[float64] {
	if p.SL > 0 {
		return optional.Some(p.SL)
	}

	return optional.None[float64]()
}

// TakeProfit returns the take profit level, None when not set.
func (p *Position) TakeProfit() optional.Option[float64] {
	if p.TP > 0 {
		return optional.Some(p.TP)
	}

	return optional.None[float64]()
}

// InProfit reports whether the position's floating P&L is non-negative.
func (p *Position) InProfit() bool {
	return p.Profit >= 0
}
