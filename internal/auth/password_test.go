package auth

import (
	"strings"
	"testing"
)

func TestHashAndVerifyRoundtrip(t *testing.T) {
	hashed, err := HashPassword("S3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hashed, "$argon2id$") {
		t.Fatalf("expected PHC argon2id format, got %q", hashed)
	}
	if !VerifyPassword("S3cret!", hashed) {
		t.Fatalf("expected correct password to verify")
	}
	if VerifyPassword("wrong", hashed) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !VerifyPassword("same", a) || !VerifyPassword("same", b) {
		t.Fatalf("both salted hashes must verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	// Malformed input is indistinguishable from a wrong password.
	for _, bad := range []string{
		"",
		"not-a-valid-hash",
		"$argon2id$v=19$m=65536,t=3,p=1$short",
		"$bcrypt$v=19$m=65536,t=3,p=1$AAAA$BBBB",
		"$argon2id$v=19$m=nope,t=3,p=1$AAAA$BBBB",
		"$argon2id$v=19$m=65536,t=3,p=1$c2FsdHNhbHQ$",
		"$argon2id$v=19$m=65536,t=3,p=1$$aGFzaGhhc2g",
	} {
		if VerifyPassword("anything", bad) {
			t.Fatalf("hash %q: expected verification failure", bad)
		}
	}
}
