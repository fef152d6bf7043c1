package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrTokenTaken means a shared-link token is already claimed by a
	// different owner or target. The message deliberately carries no
	// detail about the existing claim.
	ErrTokenTaken = errors.New("token already in use")
)

// ValidationError reports malformed input, naming the offending rule.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Rule)
}

// ConflictError reports that a folder already exists where the caller asked
// to create one. ExistingID lets the caller recover without a second lookup.
type ConflictError struct {
	Name       string
	ExistingID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("folder %q already exists (id %d)", e.Name, e.ExistingID)
}

// MissingParentError reports the first absent segment when createParents
// is off.
type MissingParentError struct {
	Segment string
}

func (e *MissingParentError) Error() string {
	return fmt.Sprintf("parent folder %q does not exist", e.Segment)
}
