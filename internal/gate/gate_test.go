package gate

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGate_UnlockWithPlainPassword(t *testing.T) {
	t.Setenv("GATE_PASSWORD", "shop-secret")
	t.Setenv("GATE_PASSWORD_HASH", "")

	g := New()

	token, err := g.Unlock("shop-secret")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if token == "" {
		t.Fatal("empty session token")
	}
	if err := g.Verify(token); err != nil {
		t.Errorf("verify issued token: %v", err)
	}
}

func TestGate_UnlockWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("shop-secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("GATE_PASSWORD_HASH", string(hash))
	t.Setenv("GATE_PASSWORD", "")

	g := New()

	if _, err := g.Unlock("shop-secret"); err != nil {
		t.Errorf("unlock with correct password: %v", err)
	}
	if _, err := g.Unlock("wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("got %v, want ErrWrongPassword", err)
	}
}

func TestGate_WrongPassword(t *testing.T) {
	t.Setenv("GATE_PASSWORD", "shop-secret")
	t.Setenv("GATE_PASSWORD_HASH", "")

	g := New()

	if _, err := g.Unlock("guess"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("got %v, want ErrWrongPassword", err)
	}
}

func TestGate_NoPasswordConfiguredStaysLocked(t *testing.T) {
	t.Setenv("GATE_PASSWORD", "")
	t.Setenv("GATE_PASSWORD_HASH", "")

	g := New()

	if _, err := g.Unlock(""); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("got %v, want ErrWrongPassword", err)
	}
}

func TestGate_RejectsGarbageToken(t *testing.T) {
	t.Setenv("GATE_PASSWORD", "shop-secret")

	g := New()

	if err := g.Verify("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
