package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct-horse" {
		t.Fatal("password not hashed")
	}

	if !CheckPassword(hash, "correct-horse") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "wrong-horse") {
		t.Error("CheckPassword() accepted the wrong password")
	}
	if CheckPassword("not-a-bcrypt-hash", "correct-horse") {
		t.Error("CheckPassword() accepted a malformed hash")
	}
}
