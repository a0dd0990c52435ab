// Package checksum computes the deterministic content hash that drives
// delta sync. Two stories with identical content always hash identically,
// and any change to an included field changes the hash, so the authority
// needs no per-story "dirty" flag.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/telltale-app/storysync/models"
)

// Story returns the hex-encoded SHA-256 checksum of a story's content.
//
// The hash covers id, title, category, description, version, and for each
// page its id, text, and page number, followed by the page's interactive
// element ids and types. Asset paths are deliberately excluded: asset
// revisions are tracked by the separate asset version counter, not by the
// story checksum.
func Story(story models.Story) string {
	var content strings.Builder
	content.WriteString(story.ID)
	content.WriteString(story.Title)
	content.WriteString(story.Category)
	content.WriteString(story.Description)
	content.WriteString(strconv.Itoa(story.Version))

	for _, page := range story.Pages {
		content.WriteString(page.ID)
		content.WriteString(page.Text)
		content.WriteString(strconv.Itoa(page.PageNumber))

		for _, el := range page.InteractiveElements {
			content.WriteString(el.ID)
			content.WriteString(el.Type)
		}
	}

	sum := sha256.Sum256([]byte(content.String()))
	return hex.EncodeToString(sum[:])
}

// File returns the hex-encoded SHA-256 checksum of raw asset bytes. The
// client records it at download time and re-verifies it during cache
// validation to catch corrupt or truncated files.
func File(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
