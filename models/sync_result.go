package models

// SyncPhase labels the discrete states a sync pass moves through. Progress
// callbacks receive the phase on every transition.
type SyncPhase string

const (
	PhaseIdle               SyncPhase = "idle"
	PhaseCheckingVersion    SyncPhase = "checking_version"
	PhaseValidatingCache    SyncPhase = "validating_cache"
	PhaseFetchingDelta      SyncPhase = "fetching_delta"
	PhaseResolvingAssetURLs SyncPhase = "resolving_asset_urls"
	PhaseDownloadingAssets  SyncPhase = "downloading_assets"
	PhaseCommitting         SyncPhase = "committing"
	PhaseComplete           SyncPhase = "complete"
	PhaseFailed             SyncPhase = "failed"

	// PhaseAlreadyRunning is reported to a caller that joined an in-flight
	// pass instead of starting its own.
	PhaseAlreadyRunning SyncPhase = "already_running"
)

// SyncProgress is one progress notification delivered to the caller's sink.
// Delivery is serialized: callbacks never run concurrently with each other.
type SyncProgress struct {
	Phase SyncPhase `json:"phase"`

	// StoryID is set for per-story events (asset downloads, commits).
	StoryID string `json:"storyId,omitempty"`

	// AssetsDone and AssetsTotal report download progress within the
	// current pass.
	AssetsDone  int `json:"assetsDone,omitempty"`
	AssetsTotal int `json:"assetsTotal,omitempty"`

	Message string `json:"message,omitempty"`
}

// ProgressSink receives progress notifications from a sync pass. A nil sink
// is valid and disables reporting.
type ProgressSink func(SyncProgress)

// SyncResult is the structured outcome of one sync pass. Expected failure
// modes are reported through Errors rather than a returned error; only
// invariant violations escape as errors.
type SyncResult struct {
	// Success is true when the pass finished with zero story-level errors,
	// including the degenerate offline and up-to-date outcomes.
	Success bool `json:"success"`

	StoriesUpdated   int `json:"storiesUpdated"`
	StoriesDeleted   int `json:"storiesDeleted"`
	AssetsDownloaded int `json:"assetsDownloaded"`
	AssetsSkipped    int `json:"assetsSkipped"`
	AssetsFailed     int `json:"assetsFailed"`

	// Errors collects per-story failure descriptions. A story listed here
	// was left out of the cache for this pass.
	Errors []string `json:"errors,omitempty"`

	// FromCache is true when the authority was unreachable and the pass
	// terminated immediately, serving previously cached content.
	FromCache bool `json:"fromCache"`

	// WasSkipped is true when the pass found nothing to do (versions match
	// and no corrupted assets) and performed no downloads.
	WasSkipped bool `json:"wasSkipped"`
}
