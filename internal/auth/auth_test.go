package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	phc, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", phc)
	}
	if !VerifyPassword(phc, "correct horse") {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword(phc, "battery staple") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct salts to yield distinct hashes")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if VerifyPassword("not-a-hash", "anything") {
		t.Fatalf("malformed hash must not verify")
	}
	if VerifyPassword("$argon2id$v=19$m=bad,t=3,p=1$AAAA$BBBB", "anything") {
		t.Fatalf("bad params must not verify")
	}
}

func TestEmptyPasswordRejected(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}
