package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// KDFTimeout bounds one master-secret derivation.
	KDFTimeout time.Duration
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the vault server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// Token is the session token sent with every request.
	Token string
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	// LogFile is the client log destination; empty discards logs.
	LogFile string
}

// ClientOverrides carries values set on the client command line.
type ClientOverrides struct {
	ConfigPath string
	ServerURL  string
	Token      string
	Timeout    time.Duration
	LogFile    string
	KDFTimeout time.Duration
}

// GetClientConfig builds and validates the client configuration. Sources,
// highest first: command-line overrides, environment, JSON file, defaults.
// The server's flag set is not parsed; the CLI owns os.Args.
func GetClientConfig(overrides ClientOverrides) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withOverrides(overrides.structured()).
		withJSON().
		merged()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			KDFTimeout: cfg.App.KDFTimeout,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
		LogFile: cfg.Adapter.LogFile,
	}

	return clientCfg, clientCfg.validate()
}

func (o ClientOverrides) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{KDFTimeout: o.KDFTimeout},
		Adapter: Adapter{
			HTTPAddress:    o.ServerURL,
			RequestTimeout: o.Timeout,
			Token:          o.Token,
			LogFile:        o.LogFile,
		},
		JSONFilePath: o.ConfigPath,
	}
}
