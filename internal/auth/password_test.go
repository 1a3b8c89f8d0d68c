package auth

import "testing"

func TestHashPassword_Uniqueness(t *testing.T) {
	t.Parallel()

	hash1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	hash2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	// Same password must produce different hashes (random per-call salt).
	if hash1 == hash2 {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !VerifyPassword("secret1", hash) {
		t.Error("correct password should verify")
	}
	if VerifyPassword("secret2", hash) {
		t.Error("wrong password should not verify")
	}
	if VerifyPassword("secret1", "not-a-hash") {
		t.Error("garbage hash should not verify")
	}
}
