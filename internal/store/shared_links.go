package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ShareTargetNote   = "note"
	ShareTargetFolder = "folder"
)

type SharedLink struct {
	Token      string
	UserID     int64
	TargetType string
	TargetID   int64
	CreatedAt  time.Time
}

func validShareTarget(targetType string) bool {
	return targetType == ShareTargetNote || targetType == ShareTargetFolder
}

// SharedLinkAvailable reports whether token can be claimed for exactly this
// (owner, target) triple: free tokens are available, and so is a token whose
// existing row already matches the triple, which makes retries idempotent.
func (s *Store) SharedLinkAvailable(ctx context.Context, token string, userID int64, targetType string, targetID int64) (bool, error) {
	existing, err := s.SharedLinkByToken(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return existing.UserID == userID &&
		existing.TargetType == targetType &&
		existing.TargetID == targetID, nil
}

// RegisterSharedLink claims token for (userID, targetType, targetID).
// A token already held with a different triple is never overwritten; the
// caller gets ErrTokenTaken and no information about the existing claim.
func (s *Store) RegisterSharedLink(ctx context.Context, token string, userID int64, targetType string, targetID int64) error {
	if token == "" {
		return &ValidationError{Field: "token", Rule: "must not be empty"}
	}
	if !validShareTarget(targetType) {
		return &ValidationError{Field: "target_type", Rule: "must be 'note' or 'folder'"}
	}
	ok, err := s.SharedLinkAvailable(ctx, token, userID, targetType, targetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenTaken
	}
	_, err = s.execContext(ctx,
		"INSERT INTO shared_links(token, user_id, target_type, target_id, created_at) VALUES(?, ?, ?, ?, ?) ON CONFLICT(token) DO NOTHING",
		token, userID, targetType, targetID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("register shared link: %w", err)
	}
	return nil
}

// MintSharedLink registers a fresh random token for the target and returns it.
func (s *Store) MintSharedLink(ctx context.Context, userID int64, targetType string, targetID int64) (string, error) {
	token := uuid.NewString()
	if err := s.RegisterSharedLink(ctx, token, userID, targetType, targetID); err != nil {
		return "", err
	}
	return token, nil
}

// UnregisterSharedLink deletes the token unconditionally. A missing token is
// not an error.
func (s *Store) UnregisterSharedLink(ctx context.Context, token string) error {
	_, err := s.execContext(ctx, "DELETE FROM shared_links WHERE token=?", token)
	if err != nil {
		return fmt.Errorf("unregister shared link: %w", err)
	}
	return nil
}

func (s *Store) SharedLinkByToken(ctx context.Context, token string) (*SharedLink, error) {
	var link SharedLink
	var created int64
	err := s.queryRowContext(ctx,
		"SELECT token, user_id, target_type, target_id, created_at FROM shared_links WHERE token=?", token).
		Scan(&link.Token, &link.UserID, &link.TargetType, &link.TargetID, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("shared link by token: %w", err)
	}
	link.CreatedAt = time.Unix(created, 0)
	return &link, nil
}
