package store

import (
	"strings"
)

const maxFolderNameLen = 255

// forbiddenNameChars are rejected anywhere in a folder name so names stay
// usable as path segments and filesystem components.
const forbiddenNameChars = `/\:*?"<>|`

// reservedFolderNames are virtual folders the UI claims for itself.
var reservedFolderNames = []string{"Favorites", "Tags", "Trash", "Public"}

// validateFolderName checks one path segment against the naming rules.
// A nil return means the name is acceptable.
func validateFolderName(name string) *ValidationError {
	if name == "" {
		return &ValidationError{Field: "folder name", Rule: "must not be empty"}
	}
	if len(name) > maxFolderNameLen {
		return &ValidationError{Field: "folder name", Rule: "must be at most 255 characters"}
	}
	if name == "." || name == ".." {
		return &ValidationError{Field: "folder name", Rule: "must not be '.' or '..'"}
	}
	if strings.ContainsAny(name, forbiddenNameChars) {
		return &ValidationError{Field: "folder name", Rule: `must not contain / \ : * ? " < > |`}
	}
	for _, reserved := range reservedFolderNames {
		if name == reserved {
			return &ValidationError{Field: "folder name", Rule: "'" + reserved + "' is reserved"}
		}
	}
	return nil
}

// splitFolderPath splits a slash-delimited path into trimmed, non-empty
// segments. Consecutive, leading and trailing slashes collapse away.
func splitFolderPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
