package utils

import "testing"

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Fitness":             "fitness",
		"Strength  Training":  "strength-training",
		"Café & Nutrition":    "cafe-nutrition",
		"--Yoga Basics!--":    "yoga-basics",
		"Pilates 101":         "pilates-101",
	}

	for input, want := range cases {
		if got := GenerateSlug(input); got != want {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestGenerateRandomString(t *testing.T) {
	a := GenerateRandomString(20)
	b := GenerateRandomString(20)

	if len(a) != 20 || len(b) != 20 {
		t.Fatalf("expected 20-char tokens, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Fatalf("two generated tokens should not collide: %q", a)
	}
	for _, r := range a {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			t.Fatalf("token contains non-alphanumeric rune %q", r)
		}
	}
}
