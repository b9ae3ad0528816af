package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/mt5-dashboard/internal/terminal"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	tempDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()

	for _, key := range []string{EnvLogin, EnvPassword, EnvServer, EnvBridgeURL, EnvProvider, EnvListen, EnvLogLevel, EnvJournal} {
		suite.T().Setenv(key, "")
	}
}

func (suite *ConfigTestSuite) writeFile(content string) string {
	path := filepath.Join(suite.tempDir, "dashboard.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0600))

	return path
}

func (suite *ConfigTestSuite) TestDefault() {
	cfg := Default()

	suite.Equal("127.0.0.1:8501", cfg.Listen)
	suite.Equal("mt5-bridge", cfg.Terminal.Provider)
	suite.Equal(terminal.DefaultBaseURL, cfg.Terminal.BaseURL)
	suite.Equal(20, cfg.Terminal.Deviation)
	suite.Equal(int64(234000), cfg.Terminal.Magic)
	suite.Equal("EURUSD", cfg.Defaults.Symbol)
	suite.Equal(0.1, cfg.Defaults.Volume)
	suite.Equal(types.DefaultComment, cfg.Defaults.Comment)
	suite.Equal(3, cfg.Defaults.RefreshInterval)
	suite.False(cfg.Journal.Enabled)
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestLoad_NoFile() {
	cfg, err := Load("")
	suite.Require().NoError(err)
	suite.Equal(Default().Listen, cfg.Listen)
}

func (suite *ConfigTestSuite) TestLoad_File() {
	path := suite.writeFile(`
listen: ":9000"
logLevel: debug
terminal:
  provider: mt5-mock
  driftIntervalMs: 500
  filling: FOK
account:
  login: 777
  server: Broker-Live
defaults:
  symbol: GBPUSD
  volume: 0.5
  comment: Grid A
  refreshInterval: 10
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal(":9000", cfg.Listen)
	suite.Equal("debug", cfg.LogLevel)
	suite.Equal("mt5-mock", cfg.Terminal.Provider)
	suite.Equal(int64(777), cfg.Account.Login)
	suite.Equal("GBPUSD", cfg.Defaults.Symbol)
	suite.Equal(10, cfg.Defaults.RefreshInterval)
	// untouched keys keep their defaults
	suite.Equal(20, cfg.Terminal.Deviation)

	defaults, err := cfg.OrderDefaults()
	suite.NoError(err)
	suite.Equal(types.OrderFillingFOK, defaults.Filling)

	providerType, providerConfig, err := cfg.ProviderConfig()
	suite.NoError(err)
	suite.Equal(terminal.ProviderMock, providerType)
	suite.Equal(500, providerConfig.(*terminal.MockConfig).DriftIntervalMs)
}

func (suite *ConfigTestSuite) TestLoad_EnvOverridesFile() {
	path := suite.writeFile(`
account:
  login: 777
  server: Broker-Live
`)

	suite.T().Setenv(EnvLogin, "5001234")
	suite.T().Setenv(EnvPassword, "secret")
	suite.T().Setenv(EnvBridgeURL, "http://10.0.0.5:18812")
	suite.T().Setenv(EnvJournal, filepath.Join(suite.tempDir, "j.parquet"))

	cfg, err := Load(path)
	suite.Require().NoError(err)

	creds := cfg.Credentials()
	suite.Equal(int64(5001234), creds.Login)
	suite.Equal("secret", creds.Password)
	suite.Equal("Broker-Live", creds.Server)
	suite.Equal("http://10.0.0.5:18812", cfg.Terminal.BaseURL)
	suite.True(cfg.Journal.Enabled)

	providerType, providerConfig, err := cfg.ProviderConfig()
	suite.NoError(err)
	suite.Equal(terminal.ProviderBridge, providerType)
	suite.Equal("http://10.0.0.5:18812", providerConfig.(*terminal.BridgeConfig).BaseURL)
}

func (suite *ConfigTestSuite) TestLoad_BadLogin() {
	suite.T().Setenv(EnvLogin, "abc")

	_, err := Load("")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestLoad_InvalidValues() {
	tests := []struct {
		name    string
		content string
	}{
		{name: "refresh interval", content: "defaults:\n  refreshInterval: 4\n"},
		{name: "provider", content: "terminal:\n  provider: binance\n"},
		{name: "filling", content: "terminal:\n  filling: AON\n"},
		{name: "volume", content: "defaults:\n  volume: 0\n"},
		{name: "log level", content: "logLevel: loud\n"},
		{name: "journal path", content: "journal:\n  enabled: true\n  path: \"\"\n"},
		{name: "yaml", content: "listen: [\n"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := Load(suite.writeFile(tt.content))
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestValidRefreshInterval() {
	for _, interval := range RefreshIntervals {
		suite.True(ValidRefreshInterval(interval))

		cfg := Default()
		cfg.Defaults.RefreshInterval = interval
		suite.NoError(cfg.Validate(), "interval %d", interval)
	}

	suite.True(ValidRefreshInterval(DefaultRefreshInterval))
	suite.False(ValidRefreshInterval(0))
	suite.False(ValidRefreshInterval(4))
}

func (suite *ConfigTestSuite) TestLoad_MissingFile() {
	_, err := Load(filepath.Join(suite.tempDir, "missing.yaml"))
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestSchema() {
	out, err := Schema()
	suite.NoError(err)
	suite.Contains(out, "refreshInterval")
	suite.Contains(out, "mt5-mock")
	suite.NotContains(out, "password")
}

func (suite *ConfigTestSuite) TestMarshalRedactsPassword() {
	cfg := Default()
	cfg.Account.Password = "hunter2"

	out, err := cfg.Marshal()
	suite.NoError(err)
	suite.NotContains(out, "hunter2")
	suite.Contains(out, "********")
}
