package validators

// SanitizeString truncates input to maxLen bytes without splitting a rune.
// Whitespace is significant and kept.
func SanitizeString(input string, maxLen int) string {
	if maxLen <= 0 || len(input) <= maxLen {
		return input
	}
	cut := maxLen
	for cut > 0 && !isRuneStart(input[cut]) {
		cut--
	}
	return input[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
