// Package assets enumerates and validates the asset paths a story refers
// to. Both sides of the sync protocol use it: the client to know what to
// download, the authority to validate URL issuance requests.
package assets

import "github.com/telltale-app/storysync/models"

// Locate returns every asset path the story references, in render order:
// cover first, then per page the background, character, and interactive
// element images. Empty paths are skipped; duplicates are removed while
// preserving first occurrence.
func Locate(story models.Story) []string {
	seen := make(map[string]struct{})
	paths := make([]string, 0, 1+2*len(story.Pages))

	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		paths = append(paths, path)
	}

	add(story.CoverImage)
	for _, page := range story.Pages {
		add(page.BackgroundImage)
		add(page.CharacterImage)
		for _, el := range page.InteractiveElements {
			add(el.Image)
		}
	}

	return paths
}
