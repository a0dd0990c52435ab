package assets

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPath is wrapped by every path validation failure.
var ErrInvalidPath = errors.New("invalid asset path")

// allowedPrefixes are the only directories asset paths may point into.
var allowedPrefixes = []string{"stories/", "audio/", "images/", "thumbnails/"}

// ValidatePath rejects asset paths that are empty, attempt traversal, are
// absolute, contain null bytes (raw or URL-encoded), or fall outside the
// allowed prefixes. The authority validates before issuing a URL and again
// before serving bytes.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path is empty", ErrInvalidPath)
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("%w: traversal sequence in %q", ErrInvalidPath, path)
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: absolute path %q", ErrInvalidPath, path)
	}
	if strings.Contains(path, "\x00") || strings.Contains(path, "%00") || strings.Contains(path, "%2500") {
		return fmt.Errorf("%w: null byte in path", ErrInvalidPath)
	}

	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q outside allowed prefixes", ErrInvalidPath, path)
}
