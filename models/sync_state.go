package models

import "time"

// ClientSyncState is the client's locally believed sync position. It is
// advanced only after a pass finishes with zero errors, so it never claims
// a consistency state the cache has not fully reached.
type ClientSyncState struct {
	// ServerVersion is the authority content version the client last
	// fully synced to. Zero means "never synced".
	ServerVersion int `json:"serverVersion"`

	AssetVersion int `json:"assetVersion"`

	// LastUpdated records when the state last advanced.
	LastUpdated time.Time `json:"lastUpdated"`
}

// ErrorResponse is the stable machine-readable error shape returned by the
// authority for protocol-level failures (missing required fields, invalid
// asset paths, internal faults).
type ErrorResponse struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"errorCode"`
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Path      string `json:"path,omitempty"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

// Stable error codes carried in ErrorResponse.ErrorCode. Clients branch on
// these instead of parsing messages.
const (
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidParameter     = "INVALID_PARAMETER"
	ErrCodeStorageUnavailable   = "STORAGE_UNAVAILABLE"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeInternalServerError  = "INTERNAL_SERVER_ERROR"
)
