package application

import "testing"

func TestRandomDigitsShape(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		code := randomDigits(otpDigits)
		if len(code) != otpDigits {
			t.Fatalf("expected %d digits, got %q", otpDigits, code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		seen[code] = true
	}
	// 64 draws from a million-value space should not all collide.
	if len(seen) < 2 {
		t.Fatalf("codes do not vary: %v", seen)
	}
}

func TestRandomDigitsDefaultsSize(t *testing.T) {
	t.Parallel()

	if got := randomDigits(0); len(got) != otpDigits {
		t.Fatalf("zero size should fall back to %d digits, got %q", otpDigits, got)
	}
}
