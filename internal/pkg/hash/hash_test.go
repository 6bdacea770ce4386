package hash

import (
	"testing"
)

func TestBcrypt(t *testing.T) {
	t.Run("HashAndVerify", func(t *testing.T) {
		// Arrange
		b := NewBcrypt(4, "pepper")

		// Act
		hashed, err := b.Hash("s3cret-password")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !b.Verify(string(hashed), "s3cret-password") {
			t.Fatalf("expected matching password to verify")
		}
		if b.Verify(string(hashed), "wrong-password") {
			t.Fatalf("expected wrong password to fail")
		}
	})

	t.Run("PepperChangesOutcome", func(t *testing.T) {
		// Arrange
		b1 := NewBcrypt(4, "pepper-one")
		b2 := NewBcrypt(4, "pepper-two")

		hashed, err := b1.Hash("s3cret-password")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act + Assert
		if b2.Verify(string(hashed), "s3cret-password") {
			t.Fatalf("expected verification to fail with a different pepper")
		}
	})
}

func TestHMACSHA256(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		// Arrange
		h := NewHMACSHA256("key")

		// Act
		first, _ := h.Hash("123456")
		second, _ := h.Hash("123456")

		// Assert
		if string(first) != string(second) {
			t.Fatalf("expected deterministic output")
		}
		if !h.Verify(string(first), "123456") {
			t.Fatalf("expected code to verify")
		}
		if h.Verify(string(first), "654321") {
			t.Fatalf("expected wrong code to fail")
		}
	})

	t.Run("KeyedOutput", func(t *testing.T) {
		// Arrange
		h1 := NewHMACSHA256("key-one")
		h2 := NewHMACSHA256("key-two")

		// Act
		first, _ := h1.Hash("123456")

		// Assert
		if h2.Verify(string(first), "123456") {
			t.Fatalf("expected verification to fail with a different key")
		}
	})
}
