package types

import "time"

// SymbolInfo describes a tradable instrument.
type SymbolInfo struct {
	Name string `json:"name" yaml:"name"`
	// Visible is true when the symbol is shown in Market Watch. Prices are
	// only streamed for visible symbols.
	Visible    bool    `json:"visible" yaml:"visible"`
	Point      float64 `json:"point" yaml:"point"`
	Digits     int     `json:"digits" yaml:"digits"`
	VolumeMin  float64 `json:"volume_min" yaml:"volume_min"`
	VolumeMax  float64 `json:"volume_max" yaml:"volume_max"`
	VolumeStep float64 `json:"volume_step" yaml:"volume_step"`
	// TradeContractSize is the number of base units in one lot.
	TradeContractSize float64 `json:"trade_contract_size" yaml:"trade_contract_size"`
}

// Tick is the latest quote for a symbol.
type Tick struct {
	Symbol string    `json:"symbol" yaml:"symbol"`
	Bid    float64   `json:"bid" yaml:"bid"`
	Ask    float64   `json:"ask" yaml:"ask"`
	Time   time.Time `json:"time" yaml:"time"`
}
