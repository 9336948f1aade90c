package validators

import (
	"strings"
	"unicode/utf8"
)

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		// Back up to a rune boundary so a multi-byte character is never
		// cut mid-sequence.
		cut := maxLen
		for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
			cut--
		}
		return trimmed[:cut]
	}
	return trimmed
}
