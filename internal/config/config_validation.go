// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Telltale Labs

package config

import "time"

// Defaults applied after merging when a field is still zero. Values mirror
// the sync protocol's documented behaviour.
const (
	defaultURLTTL         = 15 * time.Minute
	defaultRequestTimeout = 15 * time.Second
	defaultMaxRetries     = 2
	defaultURLBatchSize   = 50
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.URLTTL <= 0 {
		cfg.App.URLTTL = defaultURLTTL
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Sync.MaxRetries <= 0 {
		cfg.Sync.MaxRetries = defaultMaxRetries
	}
	if cfg.Sync.URLBatchSize <= 0 {
		cfg.Sync.URLBatchSize = defaultURLBatchSize
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants shared by server and client startup. Role-specific checks
// (server address, client adapter) live in the role config constructors.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.URLSignKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.AssetDir == "" {
		return ErrInvalidSyncConfigs
	}

	return nil
}
