package terminal

import (
	"fmt"
	"sort"

	"github.com/rxtech-lab/mt5-dashboard/internal/terminal/mockbridge"
	"github.com/rxtech-lab/mt5-dashboard/pkg/schema"
)

type ProviderType string

const (
	ProviderBridge ProviderType = "mt5-bridge"
	ProviderMock   ProviderType = "mt5-mock"
)

type ProviderInfo struct {
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	IsPaperTrading bool   `json:"isPaperTrading"`
}

var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderBridge: {
		Name:           string(ProviderBridge),
		DisplayName:    "MetaTrader 5",
		Description:    "MetaTrader 5 terminal reached through a local bridge process",
		IsPaperTrading: false,
	},
	ProviderMock: {
		Name:           string(ProviderMock),
		DisplayName:    "MetaTrader 5 (simulated)",
		Description:    "In-process simulated terminal with a demo account, no broker connection",
		IsPaperTrading: true,
	},
}

// GetSupportedProviders returns the provider names in stable order.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific terminal provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, fmt.Errorf("unsupported terminal provider: %s", providerName)
	}

	return info, nil
}

// GetProviderConfigSchema returns the JSON schema for a provider's configuration.
func GetProviderConfigSchema(providerName string) (string, error) {
	switch ProviderType(providerName) {
	case ProviderBridge:
		return schema.ToJSONSchema(BridgeConfig{
			BaseURL:        "",
			TimeoutSeconds: 0,
		})
	case ProviderMock:
		return schema.ToJSONSchema(MockConfig{
			DriftIntervalMs: 0,
			Seed:            0,
		})
	default:
		return "", fmt.Errorf("unsupported terminal provider: %s", providerName)
	}
}

// ParseProviderConfig parses a JSON configuration string for the given provider.
func ParseProviderConfig(providerName string, jsonConfig string) (any, error) {
	switch ProviderType(providerName) {
	case ProviderBridge:
		return parseBridgeConfig(jsonConfig)
	case ProviderMock:
		return parseMockConfig(jsonConfig)
	default:
		return nil, fmt.Errorf("unsupported terminal provider: %s", providerName)
	}
}

// NewTerminal creates a terminal for the provider type.
// The mock provider starts an in-process bridge on a loopback port and talks to it
// over HTTP like the real one; Close on the returned client stops it.
func NewTerminal(providerType ProviderType, config any) (*BridgeClient, error) {
	switch providerType {
	case ProviderBridge:
		cfg, ok := config.(*BridgeConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config type for mt5 bridge provider")
		}

		return NewBridgeClient(*cfg), nil

	case ProviderMock:
		cfg, ok := config.(*MockConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config type for mt5 mock provider")
		}

		serverConfig := mockbridge.DefaultConfig()
		serverConfig.DriftInterval = cfg.DriftInterval()
		serverConfig.Seed = cfg.Seed

		server := mockbridge.NewServer(serverConfig)
		if err := server.Start("127.0.0.1:0"); err != nil {
			return nil, err
		}

		client := NewBridgeClient(BridgeConfig{BaseURL: server.BaseURL(), TimeoutSeconds: DefaultTimeoutSeconds})
		client.onClose = server.Stop

		return client, nil

	default:
		return nil, fmt.Errorf("unsupported terminal provider: %s", providerType)
	}
}
