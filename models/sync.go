package models

// DeltaSyncRequest is sent by the client to fetch only the stories whose
// checksum differs from what it already has. All three fields are required;
// the authority rejects requests with any of them missing.
type DeltaSyncRequest struct {
	// ClientVersion is the content version the client last fully synced to.
	// A pointer so that an absent field is distinguishable from version 0.
	ClientVersion *int `json:"clientVersion"`

	// LastSyncTimestamp is the client's last successful sync time in epoch
	// milliseconds.
	LastSyncTimestamp *int64 `json:"lastSyncTimestamp"`

	// StoryChecksums maps every locally cached story id to its last-synced
	// checksum. An empty map means the client has nothing cached.
	StoryChecksums map[string]string `json:"storyChecksums"`
}

// DeltaSyncResponse carries everything the client needs to reconcile its
// cache: the changed stories in full, the ids it must drop, and the
// authority's complete current checksum map.
type DeltaSyncResponse struct {
	ServerVersion int `json:"serverVersion"`

	// AssetVersion tracks the asset set revision, independent of story text.
	AssetVersion int `json:"assetVersion"`

	// Stories contains every story that is new or changed relative to the
	// request's checksums. Never nil in a successful response.
	Stories []Story `json:"stories"`

	// DeletedStoryIDs lists ids the client has but the authority no longer
	// does.
	DeletedStoryIDs []string `json:"deletedStoryIds"`

	// StoryChecksums is the authority's full current checksum map, which
	// becomes the client's new baseline after a zero-error pass.
	StoryChecksums map[string]string `json:"storyChecksums"`

	TotalStories int   `json:"totalStories"`
	UpdatedCount int   `json:"updatedCount"`
	LastUpdated  int64 `json:"lastUpdated"`
}

// ContentVersionResponse answers the lightweight version probe the client
// issues before deciding whether a full delta fetch is needed.
type ContentVersionResponse struct {
	ID           string            `json:"id"`
	Version      int               `json:"version"`
	AssetVersion int               `json:"assetVersion"`
	LastUpdated  int64             `json:"lastUpdated"`
	Checksums    map[string]string `json:"storyChecksums"`
	TotalStories int               `json:"totalStories"`
}

// SignedURLResponse is the single-asset URL issuance reply.
type SignedURLResponse struct {
	Path      string `json:"path"`
	SignedURL string `json:"signedUrl"`
}

// BatchURLsRequest asks the authority to issue signed URLs for many asset
// paths in one round-trip.
type BatchURLsRequest struct {
	Paths []string `json:"paths"`
}

// BatchURLsResponse returns one entry per resolvable path plus the list of
// paths the authority could not resolve. The sum of both always equals the
// request's path count.
type BatchURLsResponse struct {
	URLs   []SignedURLEntry `json:"urls"`
	Failed []string         `json:"failed"`
}

// SignedURLEntry is a single issued URL with its expiry in epoch millis.
type SignedURLEntry struct {
	Path      string `json:"path"`
	SignedURL string `json:"signedUrl"`
	ExpiresAt int64  `json:"expiresAt"`
}
