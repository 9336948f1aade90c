package validators

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeStringTrimsAndCaps(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("expected trimmed string, got %q", got)
	}
	if got := SanitizeString("abcdef", 4); got != "abcd" {
		t.Fatalf("expected capped string, got %q", got)
	}
	if got := SanitizeString("abc", 10); got != "abc" {
		t.Fatalf("short input must pass through, got %q", got)
	}
}

func TestSanitizeStringKeepsRunesIntact(t *testing.T) {
	// "Koszulka żółta" — the cap lands inside the two-byte ż.
	input := "Koszulka ż"
	cut := SanitizeString(input, 10)
	if !utf8.ValidString(cut) {
		t.Fatalf("truncation produced invalid UTF-8: %q", cut)
	}
	if cut != "Koszulka " {
		t.Fatalf("expected whole-rune truncation, got %q", cut)
	}

	long := strings.Repeat("ż", 10)
	cut = SanitizeString(long, 5)
	if !utf8.ValidString(cut) {
		t.Fatalf("truncation produced invalid UTF-8: %q", cut)
	}
	if cut != strings.Repeat("ż", 2) {
		t.Fatalf("expected two whole runes, got %q", cut)
	}
}
