package config

import (
	"fmt"
)

// ClientConfig is the client-side view of the merged configuration: the
// local cache location, the authority adapter settings, and the sync engine
// tuning.
type ClientConfig struct {
	// Storage contains the local SQLite cache settings.
	Storage Storage
	// Adapter contains authority transport address and timeout.
	Adapter Adapter
	// Sync contains sync engine tuning (retries, batch size, fan-out).
	Sync Sync
}

// ServerConfig is the authority-side view of the merged configuration.
type ServerConfig struct {
	// App contains signed-URL issuance settings.
	App App
	// Storage contains database and asset store settings.
	Storage Storage
	// Server contains inbound transport addresses and timeouts.
	Server Server
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Storage: cfg.Storage,
		Adapter: cfg.Adapter,
		Sync:    cfg.Sync,
	}

	return clientCfg, clientCfg.validate()
}

// GetServerConfig builds and validates the authority-specific config view.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:     cfg.App,
		Storage: cfg.Storage,
		Server:  cfg.Server,
	}

	return serverCfg, serverCfg.validate()
}
