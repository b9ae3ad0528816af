package mockbridge

import "github.com/rxtech-lab/mt5-dashboard/internal/types"

// Demo account accepted by DefaultConfig.
const (
	DemoLogin    int64 = 5001234
	DemoPassword       = "demo"
	DemoServer         = "MetaQuotes-Demo"
)

// DefaultConfig returns a config with one demo account and a handful of FX and metal symbols.
// XAUUSD starts hidden from Market Watch.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Accounts: []Account{
			{
				Login:    DemoLogin,
				Password: DemoPassword,
				Server:   DemoServer,
				Name:     "Demo Trader",
				Currency: "USD",
				Balance:  10000,
			},
		},
		Symbols: []SymbolConfig{
			{
				Info: types.SymbolInfo{
					Name: "EURUSD", Visible: true, Point: 0.00001, Digits: 5,
					VolumeMin: 0.01, VolumeMax: 100, VolumeStep: 0.01, TradeContractSize: 100000,
				},
				Bid: 1.08500,
				Ask: 1.08512,
			},
			{
				Info: types.SymbolInfo{
					Name: "GBPUSD", Visible: true, Point: 0.00001, Digits: 5,
					VolumeMin: 0.01, VolumeMax: 100, VolumeStep: 0.01, TradeContractSize: 100000,
				},
				Bid: 1.26400,
				Ask: 1.26415,
			},
			{
				Info: types.SymbolInfo{
					Name: "USDJPY", Visible: true, Point: 0.001, Digits: 3,
					VolumeMin: 0.01, VolumeMax: 100, VolumeStep: 0.01, TradeContractSize: 100000,
				},
				Bid: 151.200,
				Ask: 151.215,
			},
			{
				Info: types.SymbolInfo{
					Name: "XAUUSD", Visible: false, Point: 0.01, Digits: 2,
					VolumeMin: 0.01, VolumeMax: 50, VolumeStep: 0.01, TradeContractSize: 100,
				},
				Bid: 2350.10,
				Ask: 2350.40,
			},
		},
	}
}
