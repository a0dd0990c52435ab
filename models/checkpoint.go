package models

import "time"

// CheckpointTTL is the fixed lifetime of a sync checkpoint. A checkpoint
// older than this is treated as stale and discarded rather than resumed.
const CheckpointTTL = 24 * time.Hour

// SyncCheckpoint is the resumable record of an in-progress sync pass. It is
// created when a pass starts downloading, updated after each story commits,
// and deleted when the pass ends with zero errors.
type SyncCheckpoint struct {
	// ServerVersion is the authority version this pass is syncing towards.
	// A checkpoint whose ServerVersion no longer matches the authority's
	// current version is discarded instead of resumed.
	ServerVersion int `json:"serverVersion"`

	AssetVersion int `json:"assetVersion"`

	// PendingStoryIDs are the stories still to be processed.
	PendingStoryIDs []string `json:"pendingStoryIds"`

	// CompletedStoryIDs are the stories fully committed by this pass so
	// far. On resume they are subtracted from the work set.
	CompletedStoryIDs []string `json:"completedStoryIds"`

	// StoryChecksums snapshots the authority checksum map at pass start.
	StoryChecksums map[string]string `json:"storyChecksums"`

	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the checkpoint has outlived its fixed TTL.
func (c *SyncCheckpoint) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// MarkCompleted moves storyID from the pending set to the completed set.
// Unknown ids are appended to completed anyway so a resume never repeats
// finished work.
func (c *SyncCheckpoint) MarkCompleted(storyID string) {
	pending := c.PendingStoryIDs[:0]
	for _, id := range c.PendingStoryIDs {
		if id != storyID {
			pending = append(pending, id)
		}
	}
	c.PendingStoryIDs = pending
	c.CompletedStoryIDs = append(c.CompletedStoryIDs, storyID)
}
