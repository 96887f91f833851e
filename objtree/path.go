package objtree

import (
	"strings"

	"github.com/ogawa-go/ogawa/errs"
)

// joinFullName appends a child name to its parent's already-computed full
// path, used to reconstruct FullName purely from traversal context (there
// are no stored back references).
func joinFullName(parentFullName, name string) string {
	if parentFullName == "/" {
		return "/" + name
	}
	return parentFullName + "/" + name
}

// splitPath splits a "/a/b/c" path into its non-empty segments, rejecting
// empty components.
func splitPath(path string) ([]string, error) {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil, nil
	}

	segments := strings.Split(trimmed, "/")
	for _, s := range segments {
		if s == "" {
			return nil, errs.Invalid("path contains an empty component")
		}
	}

	return segments, nil
}
