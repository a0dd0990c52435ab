package models

import "time"

// Story is a versioned content item: an ordered sequence of pages plus the
// asset references needed to render them. Stories are authored on the
// authority side and distributed to clients through delta sync.
type Story struct {
	// ID uniquely identifies the story across the whole content set.
	ID string `json:"id"`

	// Title is the display title of the story.
	Title string `json:"title"`

	// Category groups stories for browsing (e.g. "bedtime", "adventure").
	Category string `json:"category"`

	// Description is an optional short summary shown in listings.
	Description string `json:"description,omitempty"`

	// Version is the story's own revision counter, bumped by the authority
	// on every content edit. It participates in the content checksum.
	Version int `json:"version"`

	// CoverImage is the asset path of the story's cover illustration.
	CoverImage string `json:"coverImage,omitempty"`

	// Available marks whether the story is currently published to clients.
	Available bool `json:"isAvailable"`

	// Pages is the ordered page sequence. Page numbers are unique and
	// increasing within a story.
	Pages []StoryPage `json:"pages,omitempty"`

	// Checksum is the deterministic content hash used for delta sync.
	// It is recomputed from content on every save, never edited directly.
	Checksum string `json:"checksum,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// StoryPage is a single page of a story.
type StoryPage struct {
	// ID uniquely identifies the page within its story.
	ID string `json:"id"`

	// PageNumber is the 1-based position of the page in reading order.
	PageNumber int `json:"pageNumber"`

	// Text is the page's narrative text.
	Text string `json:"text"`

	// BackgroundImage is the optional asset path of the page background.
	BackgroundImage string `json:"backgroundImage,omitempty"`

	// CharacterImage is the optional asset path of the page character art.
	CharacterImage string `json:"characterImage,omitempty"`

	// InteractiveElements lists the optional tappable elements on the page.
	InteractiveElements []InteractiveElement `json:"interactiveElements,omitempty"`
}

// InteractiveElement is a tappable element placed on a story page.
type InteractiveElement struct {
	// ID uniquely identifies the element within its page.
	ID string `json:"id"`

	// Type describes the interaction kind (e.g. "swaying", "blinking").
	Type string `json:"type"`

	// Image is the optional asset path of the element's artwork.
	Image string `json:"image,omitempty"`
}

// PageCount returns the number of pages, tolerating a nil slice.
func (s *Story) PageCount() int {
	return len(s.Pages)
}
