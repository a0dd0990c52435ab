package models

import "time"

// ContentVersionID is the fixed identifier of the singleton "current"
// content version record on the authority side.
const ContentVersionID = "current"

// ContentVersion is the authority's singleton record describing the current
// state of the whole content set. Version increments by one on every story
// create, update, or delete; Checksums always reflects exactly the live
// story set (entries are removed on delete).
//
// The record is the sole input the delta resolver needs besides the client's
// last-seen checksums, which keeps the sync protocol stateless per request.
type ContentVersion struct {
	ID string `json:"id"`

	// Version is the monotonic global version counter.
	Version int `json:"version"`

	// TotalStories is the size of the live story set, kept equal to
	// len(Checksums).
	TotalStories int `json:"totalStories"`

	// LastUpdated records when the content set last changed.
	LastUpdated time.Time `json:"lastUpdated"`

	// Checksums maps story id to its current content checksum.
	Checksums map[string]string `json:"storyChecksums"`
}

// NewContentVersion returns the initial record used before any story exists.
func NewContentVersion() ContentVersion {
	return ContentVersion{
		ID:          ContentVersionID,
		Version:     1,
		LastUpdated: time.Now(),
		Checksums:   make(map[string]string),
	}
}

// SetChecksum records the checksum for storyID and bumps the version.
func (cv *ContentVersion) SetChecksum(storyID, checksum string) {
	if cv.Checksums == nil {
		cv.Checksums = make(map[string]string)
	}
	cv.Checksums[storyID] = checksum
	cv.TotalStories = len(cv.Checksums)
	cv.Version++
	cv.LastUpdated = time.Now()
}

// RemoveChecksum drops storyID from the map and bumps the version.
// Removing an unknown id still counts as a mutation.
func (cv *ContentVersion) RemoveChecksum(storyID string) {
	delete(cv.Checksums, storyID)
	cv.TotalStories = len(cv.Checksums)
	cv.Version++
	cv.LastUpdated = time.Now()
}

// HasChanged reports whether the client-known checksum for storyID differs
// from the authority's current one. An unknown id counts as changed.
func (cv *ContentVersion) HasChanged(storyID, clientChecksum string) bool {
	current, ok := cv.Checksums[storyID]
	return !ok || current != clientChecksum
}
