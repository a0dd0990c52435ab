// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Telltale Labs

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for storysync.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the signed-URL key and
	// lifetime.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends, including
	// the relational database and the asset file store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client-side transport settings (authority base
	// URL, request timeout).
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds client-side sync engine tuning.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration for signed-URL issuance.
type App struct {
	// URLSignKey is the HMAC secret used to sign time-limited asset
	// download URLs. Must be kept confidential.
	// Env: APP_URL_SIGN_KEY
	URLSignKey string `env:"URL_SIGN_KEY"`

	// URLTTL is how long an issued asset URL stays valid (e.g. "15m").
	// Env: APP_URL_TTL
	URLTTL time.Duration `env:"URL_TTL"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Assets holds the file-system store settings for asset bytes.
	Assets Assets `envPrefix:"ASSETS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the connection string. The authority uses a PostgreSQL DSN;
	// the client uses a local SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Assets holds file-system settings for the asset byte store.
type Assets struct {
	// Dir is the directory asset bytes are stored in and served from.
	// Env: STORAGE_ASSETS_DIR
	Dir string `env:"DIR"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address on which the gRPC health server
	// listens, in "host:port" format.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's outbound transport settings.
type Adapter struct {
	// BaseURL is the authority's base URL (e.g. "http://localhost:8080").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds client-side sync engine tuning knobs.
type Sync struct {
	// MaxRetries is how many extra download attempts follow a retryable
	// asset failure.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// URLBatchSize is the fixed batch size for signed-URL resolution.
	// Env: SYNC_URL_BATCH_SIZE
	URLBatchSize int `env:"URL_BATCH_SIZE"`

	// Concurrency bounds the per-story download fan-out. Values below 2
	// keep the sequential orchestrator.
	// Env: SYNC_CONCURRENCY
	Concurrency int `env:"CONCURRENCY"`

	// AssetDir is the directory the client caches asset files in.
	// Env: SYNC_ASSET_DIR
	AssetDir string `env:"ASSET_DIR"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
