package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	// MinCost keeps the test fast; the production cost comes from config.
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("sturdy-passw0rd")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "sturdy-passw0rd" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}

	if !svc.Verify(hash, "sturdy-passw0rd") {
		t.Error("expected the original password to verify")
	}
	if svc.Verify(hash, "wrong-password") {
		t.Error("expected a wrong password to fail")
	}
	if svc.Verify("not-a-hash", "sturdy-passw0rd") {
		t.Error("expected a malformed hash to fail")
	}
}

func TestPasswordService_CostFallback(t *testing.T) {
	for _, cost := range []int{-1, 0, bcrypt.MaxCost + 1} {
		svc := NewPasswordService(cost)
		if svc.cost != bcrypt.DefaultCost {
			t.Errorf("cost %d: expected fallback to default, got %d", cost, svc.cost)
		}
	}
}
