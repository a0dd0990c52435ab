// Package server runs the storysync authority's transport servers.
//
// It orchestrates the HTTP content API and the gRPC health endpoint as a
// single lifecycle: startup, signal handling, and graceful shutdown of
// whichever transports the configuration enables.
package server
