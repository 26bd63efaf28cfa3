package lang

import "testing"

func TestNormalizeStripsRegion(t *testing.T) {
	if got := Normalize("AR-SA"); got != "ar" {
		t.Fatalf("expected ar, got %q", got)
	}
	if got := Normalize(" en_US "); got != "en" {
		t.Fatalf("expected en, got %q", got)
	}
}

func TestResolvePrefersExplicitParameter(t *testing.T) {
	if got := Resolve("ar", "en-GB,en;q=0.9"); got != Arabic {
		t.Fatalf("explicit lang parameter should win, got %q", got)
	}
}

func TestResolveUsesAcceptLanguageWeights(t *testing.T) {
	if got := Resolve("", "en;q=0.4,ar;q=0.9"); got != Arabic {
		t.Fatalf("expected ar from weighted header, got %q", got)
	}
}

func TestResolveFallsBackToEnglish(t *testing.T) {
	if got := Resolve("", "fr-FR,de;q=0.8"); got != English {
		t.Fatalf("expected fallback to en, got %q", got)
	}
	if got := Resolve("", ""); got != English {
		t.Fatalf("expected fallback to en on empty header, got %q", got)
	}
}

func TestParseAcceptLanguageOrdering(t *testing.T) {
	codes := ParseAcceptLanguage("ar-SA,en;q=0.8,*;q=0.1")
	if len(codes) != 2 {
		t.Fatalf("expected wildcard dropped, got %v", codes)
	}
	if codes[0] != "ar" || codes[1] != "en" {
		t.Fatalf("unexpected ordering: %v", codes)
	}
}
