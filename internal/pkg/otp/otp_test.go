package otp

import (
	"errors"
	"testing"
)

func TestNumericGenerate(t *testing.T) {
	gen := NewNumeric()

	t.Run("returns exactly the requested length", func(t *testing.T) {
		for _, length := range []int{1, 4, 6, 8, 10} {
			code, err := gen.Generate(length)
			if err != nil {
				t.Fatalf("Generate(%d) error: %v", length, err)
			}
			if len(code) != length {
				t.Fatalf("Generate(%d) = %q, want %d characters", length, code, length)
			}
		}
	})

	t.Run("only decimal digits", func(t *testing.T) {
		for range 100 {
			code, err := gen.Generate(6)
			if err != nil {
				t.Fatalf("Generate error: %v", err)
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					t.Fatalf("Generate returned non-digit %q in %q", r, code)
				}
			}
		}
	})

	t.Run("preserves leading zeros", func(t *testing.T) {
		// With 200 draws of one digit, a zero is effectively guaranteed;
		// a zero draw must still render as "0".
		seenZero := false
		for range 200 {
			code, err := gen.Generate(1)
			if err != nil {
				t.Fatalf("Generate error: %v", err)
			}
			if len(code) != 1 {
				t.Fatalf("Generate(1) = %q, want single digit", code)
			}
			if code == "0" {
				seenZero = true
			}
		}
		if !seenZero {
			t.Log("no zero drawn in 200 tries, skipping zero-padding assertion")
		}
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		for _, length := range []int{0, -1, -100} {
			if _, err := gen.Generate(length); !errors.Is(err, ErrInvalidLength) {
				t.Fatalf("Generate(%d) error = %v, want ErrInvalidLength", length, err)
			}
		}
	})

	t.Run("codes vary", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 50 {
			code, err := gen.Generate(8)
			if err != nil {
				t.Fatalf("Generate error: %v", err)
			}
			seen[code] = struct{}{}
		}
		if len(seen) < 45 {
			t.Fatalf("expected near-unique codes, got %d distinct out of 50", len(seen))
		}
	})
}
