package store

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterSharedLinkOwnership(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RegisterSharedLink(ctx, "tok-1", 1, ShareTargetNote, 5); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// A different owner must not take over the token.
	err := s.RegisterSharedLink(ctx, "tok-1", 2, ShareTargetNote, 5)
	if !errors.Is(err, ErrTokenTaken) {
		t.Fatalf("expected ErrTokenTaken, got %v", err)
	}
	link, err := s.SharedLinkByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("link lookup: %v", err)
	}
	if link.UserID != 1 {
		t.Fatalf("token tok-1 owner changed: got %d want 1", link.UserID)
	}

	// Re-registering the identical triple is idempotent.
	if err := s.RegisterSharedLink(ctx, "tok-1", 1, ShareTargetNote, 5); err != nil {
		t.Fatalf("idempotent re-register: %v", err)
	}
	link, err = s.SharedLinkByToken(ctx, "tok-1")
	if err != nil {
		t.Fatalf("link lookup: %v", err)
	}
	if link.UserID != 1 || link.TargetType != ShareTargetNote || link.TargetID != 5 {
		t.Fatalf("link row changed after idempotent retry: %+v", link)
	}
}

func TestSharedLinkAvailable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.SharedLinkAvailable(ctx, "fresh", 1, ShareTargetNote, 1)
	if err != nil || !ok {
		t.Fatalf("fresh token should be available, got ok=%v err=%v", ok, err)
	}

	if err := s.RegisterSharedLink(ctx, "fresh", 1, ShareTargetNote, 1); err != nil {
		t.Fatalf("register: %v", err)
	}

	cases := []struct {
		userID     int64
		targetType string
		targetID   int64
		want       bool
	}{
		{1, ShareTargetNote, 1, true},
		{2, ShareTargetNote, 1, false},
		{1, ShareTargetFolder, 1, false},
		{1, ShareTargetNote, 2, false},
	}
	for _, tc := range cases {
		ok, err := s.SharedLinkAvailable(ctx, "fresh", tc.userID, tc.targetType, tc.targetID)
		if err != nil {
			t.Fatalf("available(%+v): %v", tc, err)
		}
		if ok != tc.want {
			t.Fatalf("available(%+v) = %v, want %v", tc, ok, tc.want)
		}
	}
}

func TestUnregisterSharedLink(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.RegisterSharedLink(ctx, "gone", 1, ShareTargetFolder, 9); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := s.UnregisterSharedLink(ctx, "gone"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if _, err := s.SharedLinkByToken(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after unregister, got %v", err)
	}
	// Deleting a token that does not exist is not an error.
	if err := s.UnregisterSharedLink(ctx, "never-existed"); err != nil {
		t.Fatalf("unregister absent token: %v", err)
	}

	// The token is claimable again after deletion.
	if err := s.RegisterSharedLink(ctx, "gone", 2, ShareTargetNote, 3); err != nil {
		t.Fatalf("re-register after delete: %v", err)
	}
}

func TestMintSharedLink(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	token, err := s.MintSharedLink(ctx, 7, ShareTargetNote, 42)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}
	link, err := s.SharedLinkByToken(ctx, token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if link.UserID != 7 || link.TargetID != 42 {
		t.Fatalf("minted link row mismatch: %+v", link)
	}
}

func TestRegisterSharedLinkValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var verr *ValidationError
	if err := s.RegisterSharedLink(ctx, "", 1, ShareTargetNote, 1); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty token, got %v", err)
	}
	if err := s.RegisterSharedLink(ctx, "tok", 1, "workspace", 1); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for bad target type, got %v", err)
	}
}
